package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the user identifier that JWTAuth or OptionalJWT
// stored in the Echo context, for use in rate-limit keys. Anonymous
// requests (guest booking sessions included) resolve to "anon".

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID extracts a user identifier from context. JWT numeric
// claims decode as float64; string claims are passed through.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    }
    return "anon"
}
