package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/chuo/core/faculty"
)

type facultyApi struct {
	svc faculty.ServiceInterface
}

// registerFacultyAPI mounts the faculty directory endpoints. Reads are
// public, writes are admin only.
func registerFacultyAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc faculty.ServiceInterface) {
	api := facultyApi{svc: svc}

	fg := g.Group("/faculty")
	fg.GET("", api.query)
	fg.GET("/:id", api.retrieve)

	ag := fg.Group("", jwt, adminMiddleware())
	ag.POST("", api.create)
	ag.DELETE("", api.destroyMultiple)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *facultyApi) create(ctx echo.Context) error {
	var data faculty.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	mbr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating faculty member")
	}
	return ctx.JSON(http.StatusCreated, mbr)
}

func (api *facultyApi) query(ctx echo.Context) error {
	filter := new(faculty.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []faculty.Member{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	members, err := api.svc.Filter(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying faculty members")
	}
	if members == nil {
		members = []faculty.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *facultyApi) retrieve(ctx echo.Context) error {
	mbr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == faculty.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding faculty member by ID")
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *facultyApi) update(ctx echo.Context) error {
	mbr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == faculty.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding faculty member by ID")
	}

	var data faculty.UpdateMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}
	if err := data.Validate(mbr); err != nil {
		return err
	}

	mbr, err = api.svc.Update(ctx.Request().Context(), mbr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating faculty member")
	}
	return ctx.JSON(http.StatusOK, mbr)
}

func (api *facultyApi) destroy(ctx echo.Context) error {
	mbr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == faculty.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding faculty member by ID")
	}
	if err := api.svc.Delete(ctx.Request().Context(), mbr.ID); err != nil {
		return errors.Wrap(err, "deleting faculty member")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *facultyApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting faculty members")
	}
	return ctx.NoContent(http.StatusNoContent)
}
