package main

import (
	"log"
	"os"

	"github.com/trezcool/chuo/core"
	"github.com/trezcool/chuo/core/user"
	"github.com/trezcool/chuo/storage/database"
	sqlxrepos "github.com/trezcool/chuo/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	core.InitValidators()
	user.InitValidators()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:         db,
		usrRepo:    sqlxrepos.NewUserRepository(db),
		resultRepo: sqlxrepos.NewResultRepository(db),
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
