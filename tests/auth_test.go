package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func jsonRequest(t *testing.T, method, target string, body interface{}, token string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	return result
}

func TestTeacherLogin(t *testing.T) {
	resp := jsonRequest(t, "POST", "/api/auth/teacher/login", map[string]string{
		"email":    "teacher@example.com",
		"password": "password",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.NotEmpty(t, result["authToken"])

	user := result["user"].(map[string]interface{})
	assert.Equal(t, "Pam Beesly", user["full_name"])
	assert.Equal(t, "teacher@example.com", user["email"])
	assert.NotNil(t, user["date_created"])

	class := result["class"].(map[string]interface{})
	assert.Equal(t, "Period 3", class["ClassName"])
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestTeacherLoginBadCredentialsSameMessage(t *testing.T) {
	unknownResp := jsonRequest(t, "POST", "/api/auth/teacher/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, unknownResp.StatusCode)
	unknown := decodeBody(t, unknownResp)

	wrongResp := jsonRequest(t, "POST", "/api/auth/teacher/login", map[string]string{
		"email":    "teacher@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, wrongResp.StatusCode)
	wrong := decodeBody(t, wrongResp)

	assert.Equal(t, "Incorrect email or password", unknown["message"])
	assert.Equal(t, unknown["message"], wrong["message"])
}

func TestTeacherLoginMissingFields(t *testing.T) {
	resp := jsonRequest(t, "POST", "/api/auth/teacher/login", map[string]string{
		"password": "password",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing 'email' in request body", decodeBody(t, resp)["message"])

	resp = jsonRequest(t, "POST", "/api/auth/teacher/login", map[string]string{
		"email": "teacher@example.com",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing 'password' in request body", decodeBody(t, resp)["message"])
}

func TestStudentLogin(t *testing.T) {
	resp := jsonRequest(t, "POST", "/api/auth/student/login", map[string]string{
		"user_name": "student1",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	token, _ := result["authToken"].(string)
	assert.NotEmpty(t, token)

	// The issued token resolves on a protected route.
	reportsResp := jsonRequest(t, "GET", fmt.Sprintf("/api/reports/%d", testClass.ID), nil, token)
	assert.Equal(t, fiber.StatusOK, reportsResp.StatusCode)
}

func TestStudentLoginUnknownUsername(t *testing.T) {
	resp := jsonRequest(t, "POST", "/api/auth/student/login", map[string]string{
		"user_name": "ghost",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Incorrect username", decodeBody(t, resp)["message"])
}

func TestStudentLoginMissingUserName(t *testing.T) {
	resp := jsonRequest(t, "POST", "/api/auth/student/login", map[string]string{}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing 'user_name' in request body", decodeBody(t, resp)["message"])
}

func TestStudentTokenRenewal(t *testing.T) {
	resp := jsonRequest(t, "PUT", "/api/auth/student/login", nil, studentToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	renewed, _ := decodeBody(t, resp)["authToken"].(string)
	assert.NotEmpty(t, renewed)

	reportsResp := jsonRequest(t, "GET", fmt.Sprintf("/api/reports/%d", testClass.ID), nil, renewed)
	assert.Equal(t, fiber.StatusOK, reportsResp.StatusCode)
}

func TestStudentTokenRenewalRejectsTeacherToken(t *testing.T) {
	resp := jsonRequest(t, "PUT", "/api/auth/student/login", nil, teacherToken)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	resp := jsonRequest(t, "GET", fmt.Sprintf("/api/reports/%d", testClass.ID), nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing authorization token", decodeBody(t, resp)["message"])
}

func TestProtectedRouteWithMalformedToken(t *testing.T) {
	resp := jsonRequest(t, "GET", fmt.Sprintf("/api/reports/%d", testClass.ID), nil, "Bearer garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decodeBody(t, resp)["message"])
}
