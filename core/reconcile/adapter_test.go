package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type plainResolver struct{}

func (plainResolver) Resolve(ctx context.Context, q Question) (Answer, error) {
	return Answer{}, nil
}

type starResolver struct{ plainResolver }

func (starResolver) KeyCodec() KeyCodec { return SeparatorCodec('*') }

func TestSeparatorCodec(t *testing.T) {
	codec := SeparatorCodec('*')

	assert.Equal(t, "home*title", codec.Encode("home.title"))
	assert.Equal(t, Key("home.title"), codec.Decode("home*title"))
	assert.Equal(t, Key("a.b.c"), codec.Decode(codec.Encode("a.b.c")))
	assert.Equal(t, "plain", codec.Encode("plain"))
}

func TestCodecFor(t *testing.T) {
	assert.Equal(t, "a.b", CodecFor(plainResolver{}).Encode("a.b"))
	assert.Equal(t, "a*b", CodecFor(starResolver{}).Encode("a.b"))
}
