// Package broker hands live token streams from a producer goroutine to an
// SSE consumer.
package broker

type publication struct {
	id     string
	tokens chan string
}

type subscription struct {
	id  string
	out chan chan string
}

// StreamBroker passes a token channel from producer to the first consumer.
// Subsequent consumers block until the producer is finished so that they can
// resolve the situation e.g. by fetching the completed analysis from the
// database.
//
// The producer is a goroutine spawned by the HTTP POST that initiates an
// insight generation. The first consumer is the HTTP handler that returns the
// SSE stream. Subsequent consumers are likely reconnects after connectivity
// issues, for them it is better to wait for the producer to finish and render
// the complete analysis.
type StreamBroker struct {
	stopChannel      chan struct{}
	publishChannel   chan publication
	unpublishChannel chan string
	subscribeChannel chan subscription
}

// NewStreamBroker creates a StreamBroker. Call Start in a goroutine and
// Stop to shut it down.
func NewStreamBroker() *StreamBroker {
	return &StreamBroker{
		stopChannel:      make(chan struct{}),
		publishChannel:   make(chan publication),
		unpublishChannel: make(chan string),
		subscribeChannel: make(chan subscription),
	}
}

// Start listens for publish, unpublish, and subscribe events. Blocks until
// Stop is called.
func (b *StreamBroker) Start() {
	published := map[string]chan string{}
	subscriberLists := map[string][]chan chan string{}
	for {
		select {
		case <-b.stopChannel:
			return

		case sub := <-b.subscribeChannel:
			tokens := published[sub.id]
			if tokens == nil {
				// Signal to the subscriber that the producer is finished (or has not started).
				close(sub.out)
				break
			}
			subscribers := subscriberLists[sub.id]
			if subscribers == nil {
				// First subscriber gets the channel from the producer.
				subscriberLists[sub.id] = []chan chan string{sub.out}
				sub.out <- tokens
			} else {
				// Subsequent subscribers block until the producer is finished.
				subscriberLists[sub.id] = append(subscribers, sub.out)
			}

		case pub := <-b.publishChannel:
			published[pub.id] = pub.tokens

		case id := <-b.unpublishChannel:
			delete(published, id)
			// Wake the waiting subscribers so they can fetch the completed
			// analysis instead.
			for _, out := range subscriberLists[id] {
				close(out)
			}
			delete(subscriberLists, id)
		}
	}
}

// Stop the goroutine that handles the broker.
func (b *StreamBroker) Stop() {
	close(b.stopChannel)
}

// Subscribe to the stream with id. The returned channel yields the producer's
// token channel, or closes without a value when the producer is finished or
// was never started.
func (b *StreamBroker) Subscribe(id string) chan chan string {
	out := make(chan chan string, 1)
	b.subscribeChannel <- subscription{id: id, out: out}
	return out
}

// Publish the token channel for id. The channel is handed to the first
// subscriber.
func (b *StreamBroker) Publish(id string, tokens chan string) {
	b.publishChannel <- publication{id: id, tokens: tokens}
}

// Unpublish removes the stream for id. Producers should use an unbuffered
// token channel so they block until a consumer attaches, with a timeout when
// consumers are unreliable.
func (b *StreamBroker) Unpublish(id string) {
	b.unpublishChannel <- id
}
