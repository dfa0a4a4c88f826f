package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core/result"
)

type resultApi struct {
	svc result.ServiceInterface
}

// registerResultAPI mounts the results endpoints. The lookup is the public
// face of the site; document management is admin only.
func registerResultAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc result.ServiceInterface) {
	api := resultApi{svc: svc}

	rg := g.Group("/results")
	rg.GET("/lookup", api.lookup)

	dg := rg.Group("/documents", jwt, adminMiddleware())
	dg.POST("", api.importDocument)
	dg.GET("", api.queryDocuments)
	dg.GET("/:id", api.retrieveDocument)
	dg.DELETE("", api.destroyDocuments)
}

// lookup runs a single roll number query against the stored document of a
// session. The outcome is always 200; absence and dropout are data, not
// errors.
func (api *resultApi) lookup(ctx echo.Context) error {
	var query result.LookupQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to LookupQuery")
	}
	if err := query.Validate(); err != nil {
		return err
	}

	outcome, err := api.svc.Lookup(ctx.Request().Context(), query)
	if err != nil {
		if errors.Cause(err) == result.ErrDocumentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "looking up result")
	}
	return ctx.JSON(http.StatusOK, outcome)
}

func (api *resultApi) importDocument(ctx echo.Context) error {
	var data result.NewResultDocument
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResultDocument")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	doc, err := api.svc.Import(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "importing results document")
	}
	return ctx.JSON(http.StatusCreated, doc)
}

func (api *resultApi) queryDocuments(ctx echo.Context) error {
	docs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying results documents")
	}
	if docs == nil {
		docs = []result.ResultDocument{}
	}
	return ctx.JSON(http.StatusOK, docs)
}

func (api *resultApi) retrieveDocument(ctx echo.Context) error {
	doc, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == result.ErrDocumentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding results document by ID")
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *resultApi) destroyDocuments(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting results documents")
	}
	return ctx.NoContent(http.StatusNoContent)
}
