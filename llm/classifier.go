package llm

import "context"

const classificationMaxTokens = 10

const classificationInstructions = `You are a classifier. Given a user query, reply with one word: ` +
	`'trip_planning' if the user is asking to plan/book a trip with details like destination, dates, guests, budget, etc. ` +
	`Or 'general_info' if the user is just asking for information or advice without booking.`

// Classifier asks the model for a one-word intent label
type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

// Classify returns the raw label; normalization happens in the router
func (c *Classifier) Classify(ctx context.Context, query string) (string, error) {
	return c.client.Complete(ctx, classificationInstructions, query, classificationMaxTokens)
}
