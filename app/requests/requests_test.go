package requests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/app/models/content"
	"twogether/app/models/user"
	"twogether/pkg/apperror"
	"twogether/pkg/cursor"
)

func jsonContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func queryContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func description(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	return appErr.Description
}

func TestValidateProfile(t *testing.T) {
	req, err := ValidateProfile(jsonContext(`{"nickname":"minji","birthDay":"1999-02-03","gender":"female"}`))
	require.NoError(t, err)
	require.NotNil(t, req.BirthDate())
	assert.Equal(t, "1999-02-03", req.BirthDate().String())
	require.NotNil(t, req.GenderValue())
	assert.Equal(t, user.GenderFemale, *req.GenderValue())

	_, err = ValidateProfile(jsonContext(`{"nickname":"a"}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, description(t, err), "nickname")

	_, err = ValidateProfile(jsonContext(`{"nickname":"minji","birthDay":"1999-02-30"}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, description(t, err), "birthDay")
}

func TestValidateSignIn(t *testing.T) {
	req, err := ValidateSignIn(jsonContext(`{"loginPlatform":"KAKAO","idToken":"token"}`))
	require.NoError(t, err)
	assert.Equal(t, "KAKAO", string(req.Platform()))

	_, err = ValidateSignIn(jsonContext(`{"loginPlatform":"KAKAO"}`))
	assert.Contains(t, description(t, err), "idToken")
}

func TestValidateContent(t *testing.T) {
	req, err := ValidateContent(jsonContext(`{"title":"dinner","ownerType":"US"}`), false)
	require.NoError(t, err)
	assert.Equal(t, content.PerspectiveUs, req.Perspective())
	assert.Nil(t, req.Tags)

	req, err = ValidateContent(jsonContext(`{"title":"dinner","tags":[]}`), false)
	require.NoError(t, err)
	assert.NotNil(t, req.Tags)
	assert.Empty(t, req.Tags)

	_, err = ValidateContent(jsonContext(`{"title":"dinner"}`), true)
	assert.Contains(t, description(t, err), "version")

	_, err = ValidateContent(jsonContext(`{"title":"dinner","ownerType":"THEM"}`), false)
	assert.Contains(t, description(t, err), "ownerType")

	_, err = ValidateContent(jsonContext(`{"title":"`+strings.Repeat("a", 101)+`"}`), false)
	assert.Contains(t, description(t, err), "title")
}

func TestValidateSchedule(t *testing.T) {
	req, err := ValidateSchedule(jsonContext(`{"title":"trip","startAt":"2026-03-02T09:00:00+09:00","endAt":"2026-03-02T10:00:00Z","version":3}`), true)
	require.NoError(t, err)
	start, end, err := req.Period()
	require.NoError(t, err)
	assert.True(t, start.Before(end))
	assert.EqualValues(t, 3, *req.Version)

	_, err = ValidateSchedule(jsonContext(`{"title":"trip","startAt":"2026-03-02 09:00","endAt":"2026-03-02T10:00:00Z"}`), false)
	assert.Contains(t, description(t, err), "startAt")
}

func TestValidateCompletionAndCoupleUpdate(t *testing.T) {
	_, err := ValidateCompletion(jsonContext(`{"version":1}`))
	assert.Contains(t, description(t, err), "completed")

	_, err = ValidateCoupleUpdate(jsonContext(`{}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	req, err := ValidateCoupleUpdate(jsonContext(`{"startDate":"2024-05-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", req.Start().String())
	assert.Nil(t, req.SharedMessage)

	_, err = ValidateCoupleUpdate(jsonContext(`{"startDate":"May 1st"}`))
	assert.Contains(t, description(t, err), "startDate")
}

func TestValidatePageQuery(t *testing.T) {
	q, err := ValidatePageQuery(queryContext("pageSize=7&lastId=42"))
	require.NoError(t, err)
	assert.Equal(t, 7, q.PageSize)
	id, err := cursor.DecodeID(q.Cursor)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	q, err = ValidatePageQuery(queryContext("cursor=abc&lastId=42"))
	require.NoError(t, err)
	assert.Equal(t, "abc", q.Cursor)

	q, err = ValidatePageQuery(queryContext(""))
	require.NoError(t, err)
	assert.Zero(t, q.PageSize)
	assert.Empty(t, q.Cursor)

	for _, query := range []string{"pageSize=ten", "pageSize=2", "pageSize=4", "pageSize=21", "pageSize=100", "pageSize=-5"} {
		_, err = ValidatePageQuery(queryContext(query))
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, query)
		assert.Contains(t, description(t, err), "pageSize", query)
	}
	for _, query := range []string{"lastId=-1", "lastId=0", "lastId=1.5", "lastId=abc"} {
		_, err = ValidatePageQuery(queryContext(query))
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, query)
		assert.Contains(t, description(t, err), "lastId", query)
	}

	q, err = ValidatePageQuery(queryContext("pageSize=5"))
	require.NoError(t, err)
	assert.Equal(t, 5, q.PageSize)
	q, err = ValidatePageQuery(queryContext("pageSize=20"))
	require.NoError(t, err)
	assert.Equal(t, 20, q.PageSize)
}

func TestValidateHolidayQuery(t *testing.T) {
	q, err := ValidateHolidayQuery(queryContext("year=2026&month=3"))
	require.NoError(t, err)
	assert.Equal(t, 2026, q.Year)
	assert.Equal(t, 3, q.Month)

	_, err = ValidateHolidayQuery(queryContext("year=2026&month=13"))
	assert.Contains(t, description(t, err), "month")
}

func TestPathID(t *testing.T) {
	c := queryContext("")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := PathID(c, "id")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, err = PathID(c, "id")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
