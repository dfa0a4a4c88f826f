package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core/event"
)

type eventApi struct {
	svc event.ServiceInterface
}

// registerEventAPI mounts the campus event endpoints. Reads are public,
// writes are admin only.
func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc event.ServiceInterface) {
	api := eventApi{svc: svc}

	eg := g.Group("/events")
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)

	ag := eg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.DELETE("", api.destroyMultiple)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	evt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) query(ctx echo.Context) error {
	filter := new(event.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []event.Event{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	events, err := api.svc.Filter(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	evt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding event by ID")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	evt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding event by ID")
	}

	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(evt); err != nil {
		return err
	}

	evt, err = api.svc.Update(ctx.Request().Context(), evt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	evt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding event by ID")
	}
	if err := api.svc.Delete(ctx.Request().Context(), evt.ID); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting events")
	}
	return ctx.NoContent(http.StatusNoContent)
}
