package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	var usr User
	require.NoError(t, usr.SetPassword("s3cret pass"))

	assert.NotContains(t, string(usr.PasswordHash), "s3cret")
	assert.NoError(t, usr.CheckPassword("s3cret pass"))
	assert.Error(t, usr.CheckPassword("wrong pass"))
	assert.Error(t, usr.CheckPassword(""))
}

func TestIsTeacher(t *testing.T) {
	teacher := User{Role: RoleTeacher}
	student := User{Role: RoleStudent}
	nobody := User{}

	assert.True(t, teacher.IsTeacher())
	assert.False(t, student.IsTeacher())
	assert.False(t, nobody.IsTeacher())
}
