package main

import (
	"log"
	"os"

	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/auth"
	"github.com/upperenglish/backend/core/teacher"
	"github.com/upperenglish/backend/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := mongodb.Open(conf)
	errAndDie(err)

	cli := commandLine{
		db:         db,
		authSvc:    auth.NewService(mongodb.NewAuthRepository(db, conf)),
		teacherSvc: teacher.NewService(mongodb.NewTeacherRepository(db, conf)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
