package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) addTeacher(name string) error {
	tch, err := cli.teacherSvc.Add(context.Background(), name)
	if err != nil {
		return err
	}
	fmt.Printf("teacher %q added (id=%s)\n", tch.Name, tch.ID)
	return nil
}
