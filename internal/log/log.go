// Package log writes one JSON object per line through the standard logger.
//
// Levels map to the catalog's event families:
//   - info: public activity such as contact.submit.
//   - audit: auth.login.success, auth.logout and every admin.* mutation.
//   - warn (Security): auth.login.fail, auth.login.locked, access.denied*,
//     validation.fail, csrf.fail and rate.login.hit.
//   - error: server.error for storage faults and unhandled errors.
//
// Entries carry the request id, client ip and the acting user's id when a
// session resolved. Passwords, hashes and session tokens are never passed in.
package log

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/domain"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Role      string         `json:"role,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// secretKeys never reach the output, whatever a caller passes in fields.
var secretKeys = map[string]bool{"password": true, "password_hash": true, "token": true, "sid": true}

func scrub(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if secretKeys[k] {
			v = "[redacted]"
		}
		out[k] = v
	}
	return out
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: scrub(fields)}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		if u, ok := c.Locals("user").(*domain.PublicUser); ok && u != nil {
			e.UserID = strconv.FormatInt(u.ID, 10)
			e.Role = u.Role
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
