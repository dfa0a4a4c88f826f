package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core/notice"
)

type noticeApi struct {
	svc notice.ServiceInterface
}

// registerNoticeAPI mounts the notice board endpoints. Reads are public,
// writes are admin only.
func registerNoticeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc notice.ServiceInterface) {
	api := noticeApi{svc: svc}

	ng := g.Group("/notices")
	ng.GET("", api.query, optionalJWTMiddleware())
	ng.GET("/:id", api.retrieve)

	ag := ng.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.DELETE("", api.destroyMultiple)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *noticeApi) create(ctx echo.Context) error {
	var data notice.NewNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ntc, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating notice")
	}
	return ctx.JSON(http.StatusCreated, ntc)
}

func (api *noticeApi) query(ctx echo.Context) error {
	filter := new(notice.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []notice.Notice{})
	}
	filter.Clean()
	// anonymous visitors only see published notices
	if _, err := getContextClaims(ctx); err != nil {
		filter.PublishedOnly = true
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	notices, err := api.svc.Filter(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	if notices == nil {
		notices = []notice.Notice{}
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (api *noticeApi) retrieve(ctx echo.Context) error {
	ntc, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == notice.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding notice by ID")
	}
	return ctx.JSON(http.StatusOK, ntc)
}

func (api *noticeApi) update(ctx echo.Context) error {
	ntc, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == notice.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding notice by ID")
	}

	var data notice.UpdateNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNotice")
	}
	if err := data.Validate(ntc); err != nil {
		return err
	}

	ntc, err = api.svc.Update(ctx.Request().Context(), ntc.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating notice")
	}
	return ctx.JSON(http.StatusOK, ntc)
}

func (api *noticeApi) destroy(ctx echo.Context) error {
	ntc, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == notice.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding notice by ID")
	}
	if err := api.svc.Delete(ctx.Request().Context(), ntc.ID); err != nil {
		return errors.Wrap(err, "deleting notice")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *noticeApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting notices")
	}
	return ctx.NoContent(http.StatusNoContent)
}
