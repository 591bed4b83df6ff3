package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUsername_Reserved(t *testing.T) {
	for _, name := range []string{"me", "Me", "ME", "mE"} {
		err := Username(name)
		assert.ErrorIs(t, err, ErrUsernameReserved, "username %q must be rejected", name)
	}
}

func TestUsername_Charset(t *testing.T) {
	assert.NoError(t, Username("bob"))
	assert.NoError(t, Username("bob.smith+test@x_1-2"))

	assert.ErrorIs(t, Username("bob smith"), ErrUsernameInvalid)
	assert.ErrorIs(t, Username("bob!"), ErrUsernameInvalid)
}

func TestUsername_Length(t *testing.T) {
	assert.ErrorIs(t, Username(""), ErrUsernameLength)

	long := make([]byte, 151)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, Username(string(long)), ErrUsernameLength)
}

func TestYear(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, Year(current))
	assert.NoError(t, Year(1869))
	assert.NoError(t, Year(-500), "no lower bound on year")
	assert.Error(t, Year(current+1))
}
