package eventbus

import "context"

// Stream names. Topics are prefixed with the stream name so the
// DefaultSubjectCalculator maps them onto the right stream.
const (
	MatchStream = "match"
)

// ProvisionStreams creates every stream the application publishes to.
func ProvisionStreams(ctx context.Context, eb EventBus) error {
	for _, stream := range []string{MatchStream} {
		if err := eb.CreateStream(ctx, stream); err != nil {
			return err
		}
	}
	return nil
}
