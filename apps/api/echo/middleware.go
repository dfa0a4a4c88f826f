package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// objectMiddleware resolves the :id path param into the detail object and
// stashes it in the context for the wrapped handlers.
func objectMiddleware(get func(ctx echo.Context, id string) (interface{}, error), notFound error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := get(ctx, ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == notFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding object by ID")
			}
			ctx.Set("object", obj)
			return next(ctx)
		}
	}
}

func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin && contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
