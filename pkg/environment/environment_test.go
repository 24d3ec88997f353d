package environment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	c := require.New(t)

	os.Setenv("CNM_TEST_STRING", "us-west-2")
	defer os.Unsetenv("CNM_TEST_STRING")

	c.Equal("us-west-2", GetString("CNM_TEST_STRING", "us-east-1"))
	c.Equal("us-east-1", GetString("CNM_TEST_UNSET", "us-east-1"))

	os.Setenv("CNM_TEST_STRING", "")
	c.Equal("us-east-1", GetString("CNM_TEST_STRING", "us-east-1"))
}
