package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/api"
)

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "IDの形式が不正です")
	}
	return id, nil
}

func parseUserID(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(api.HeaderUserID)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "ユーザーIDの形式が不正です")
	}
	return id, nil
}

func parseBoolQuery(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, name+" の値が不正です")
	}
	return v, nil
}
