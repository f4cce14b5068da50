package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/upperenglish/backend/apps/api/echo"
	"github.com/upperenglish/backend/core"
	"github.com/upperenglish/backend/core/auth"
	"github.com/upperenglish/backend/core/classroom"
	"github.com/upperenglish/backend/core/group"
	"github.com/upperenglish/backend/core/roster"
	"github.com/upperenglish/backend/core/student"
	logsvc "github.com/upperenglish/backend/services/logger"
	"github.com/upperenglish/backend/storage/database/mongodb"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.RollbarToken != "" && !conf.Debug {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up validation
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator(enLocale.Locale())
	core.InitValidators(validate, translator)

	// set up DB
	db, err := mongodb.Open(conf)
	if err != nil {
		logger.Fatal("opening database", "err", err)
	}

	studentRepo := mongodb.NewStudentRepository(db, conf)
	teacherRepo := mongodb.NewTeacherRepository(db, conf)
	groupRepo := mongodb.NewGroupRepository(db, conf)
	classroomRepo := mongodb.NewClassroomRepository(db, conf)
	authRepo := mongodb.NewAuthRepository(db, conf)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       conf.Server.Addr,
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,

			AuthSvc:      auth.NewService(authRepo),
			StudentSvc:   student.NewService(studentRepo),
			GroupSvc:     group.NewService(groupRepo, studentRepo),
			ClassroomSvc: classroom.NewService(classroomRepo),
			RosterSvc:    roster.NewService(teacherRepo, studentRepo, groupRepo),
		},
	)
	app.Start()
}
