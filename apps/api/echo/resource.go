package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core/resource"
)

type resourceApi struct {
	svc resource.ServiceInterface
}

// registerResourceAPI mounts the downloads endpoints. Reads are public,
// writes are admin only.
func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc resource.ServiceInterface) {
	api := resourceApi{svc: svc}

	rg := g.Group("/resources")
	rg.GET("", api.query)
	rg.GET("/:id", api.retrieve)

	ag := rg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.DELETE("", api.destroyMultiple)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *resourceApi) create(ctx echo.Context) error {
	var data resource.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating resource")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *resourceApi) query(ctx echo.Context) error {
	filter := new(resource.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []resource.Resource{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	resources, err := api.svc.Filter(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	if resources == nil {
		resources = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *resourceApi) retrieve(ctx echo.Context) error {
	res, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == resource.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding resource by ID")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) update(ctx echo.Context) error {
	res, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == resource.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding resource by ID")
	}

	var data resource.UpdateResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResource")
	}
	if err := data.Validate(res); err != nil {
		return err
	}

	res, err = api.svc.Update(ctx.Request().Context(), res.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating resource")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	res, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == resource.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding resource by ID")
	}
	if err := api.svc.Delete(ctx.Request().Context(), res.ID); err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *resourceApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting resources")
	}
	return ctx.NoContent(http.StatusNoContent)
}
