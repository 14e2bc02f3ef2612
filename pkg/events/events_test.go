package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventKey(t *testing.T) {
	assert.Equal(t, "question:7", Event{Type: AnswerCreated, QuestionID: 7, AnswerID: 3}.Key())
	assert.Equal(t, "question:7", Event{Type: QuestionDeleted, QuestionID: 7}.Key())
	assert.Equal(t, "answer:3", Event{Type: AnswerDeleted, AnswerID: 3}.Key())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: QuestionCreated}))
}
