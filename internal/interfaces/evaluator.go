package interfaces

import (
	"context"

	"github.com/moneyfornothin/taxchat/internal/models"
)

// Evaluator records per-turn groundedness/relevance material after an
// answer is produced. Recording is fire-and-forget: implementations must
// never let a recording failure affect the user-visible answer, and the
// chat pipeline ignores the returned error beyond logging it.
type Evaluator interface {
	Record(ctx context.Context, record *models.ResponseRecord) error
}
