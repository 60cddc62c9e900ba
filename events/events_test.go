package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e Event) error {
	return m.Called(ctx, e).Error(0)
}

func sampleEvent() Event {
	return NewOrderEvent(OrderPlaced, &models.Order{
		ID:     42,
		UserID: 7,
		Status: models.OrderStatusPending,
		Total:  decimal.RequireFromString("1616.00"),
		Items:  []models.OrderItem{{}, {}},
	})
}

func TestMultiPublishesToEverySink(t *testing.T) {
	ctx := context.Background()
	e := sampleEvent()

	failing := new(mockPublisher)
	failing.On("Publish", ctx, e).Return(errors.New("broker down"))
	ok := new(mockPublisher)
	ok.On("Publish", ctx, e).Return(nil)

	err := Multi{failing, ok}.Publish(ctx, e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	failing.AssertExpectations(t)
	ok.AssertExpectations(t)
}

func TestNewOrderEvent(t *testing.T) {
	e := sampleEvent()
	assert.Equal(t, OrderPlaced, e.Type)
	assert.Equal(t, uint(42), e.OrderID)
	assert.Equal(t, 2, e.Items)
	assert.False(t, e.Occurred.IsZero())
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisherKeysByOrder(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))
	assert.Equal(t, "order.placed", string(w.msgs[0].Headers[0].Value))

	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, uint(7), got.UserID)
}

func TestHubBroadcastsToConnectedClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), sampleEvent()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, uint(42), got.OrderID)
	assert.Equal(t, models.OrderStatusPending, got.Status)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestKafkaWriterIsAsync(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "orders", zerolog.Nop())
	defer p.Close()

	w, ok := p.w.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.Async, "publishing must not wait for broker acks")
	assert.NotNil(t, w.Completion)
}

func TestKafkaCompletionLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	done := completionLogger(zerolog.New(&buf), "orders")

	done([]kafka.Message{{}}, nil)
	assert.Empty(t, buf.String())

	done([]kafka.Message{{}, {}}, errors.New("broker unreachable"))
	assert.Contains(t, buf.String(), "broker unreachable")
	assert.Contains(t, buf.String(), `"messages":2`)
}

func TestHubStalledClientDoesNotHoldTheHub(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	// Hold the client's write lock to stand in for a socket stuck mid-write.
	hub.mu.Lock()
	var stalled *client
	for c := range hub.clients {
		stalled = c
	}
	hub.mu.Unlock()
	stalled.mu.Lock()

	published := make(chan struct{})
	go func() {
		_ = hub.Publish(context.Background(), sampleEvent())
		close(published)
	}()
	time.Sleep(50 * time.Millisecond)

	counted := make(chan int)
	go func() { counted <- hub.Clients() }()
	select {
	case n := <-counted:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("hub lock held while writing to a client")
	}

	stalled.mu.Unlock()
	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("publish did not finish after the client recovered")
	}
}
