package main

import (
	"context"
	"fmt"

	"github.com/edulab/peerreview/core"
	"github.com/edulab/peerreview/core/user"
)

// addUser creates a user.User with the given credentials.
func (cli *commandLine) addUser(email, name, pwd string, isTeacher bool) error {
	ctx := context.Background()

	role := user.RoleStudent
	if isTeacher {
		role = user.RoleTeacher
	}

	nu := user.NewUser{
		Email:    core.CleanString(email, true /* lower */),
		Name:     core.CleanString(name),
		Password: pwd,
		Role:     role,
	}
	if err := cli.usrSvc.CheckUniqueness(ctx, nu.Email); err != nil {
		return err
	}

	usr, err := cli.usrSvc.Register(ctx, nu)
	if err != nil {
		return err
	}
	fmt.Printf("created %s user %s (id=%d)\n", usr.Role, usr.Email, usr.ID)
	return nil
}
