package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) setPassword(pwd string) error {
	if err := cli.authSvc.SetPassword(context.Background(), pwd); err != nil {
		return err
	}
	fmt.Println("password updated")
	return nil
}
