package main

import (
	"context"
	"io/ioutil"

	"github.com/trezcool/chuo/core/result"
)

// importResults loads a session's extracted results text into the database.
// An existing document for the session is replaced.
func (cli *commandLine) importResults(session, title, path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc := result.NewService(cli.resultRepo)

	nd := result.NewResultDocument{
		Session: session,
		Title:   title,
		Text:    string(data),
	}
	if err := nd.Validate(); err != nil {
		return err
	}

	if doc, err := cli.resultRepo.GetDocumentBySession(ctx, nd.Session); err == nil {
		doc.Title = nd.Title
		doc.Text = nd.Text
		_, err = cli.resultRepo.UpdateDocument(ctx, doc)
		return err
	} else if err != result.ErrDocumentNotFound {
		return err
	}

	_, err = svc.Import(ctx, nd)
	return err
}
