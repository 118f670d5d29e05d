package graphql_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/qcharged/product-service/pkg/graphql"
)

func helloSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := gql.NewSchema(graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "world"},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "hello " + p.Args["name"].(string), nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return schema
}

func TestHandlerPostWithVariables(t *testing.T) {
	h := gql.Handler(helloSchema(t))
	body := `{"query":"query($n: String) { hello(name: $n) }","variables":{"n":"gopher"}}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"hello":"hello gopher"}}`, rec.Body.String())
}

func TestHandlerGet(t *testing.T) {
	h := gql.Handler(helloSchema(t))
	target := "/graphql?query=" + url.QueryEscape("{ hello }")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	assert.JSONEq(t, `{"data":{"hello":"hello world"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target+"&variables=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerReportsQueryErrorsWith200(t *testing.T) {
	h := gql.Handler(helloSchema(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ missing }"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}

func TestHandlerRejectsBadRequests(t *testing.T) {
	h := gql.Handler(helloSchema(t))

	cases := []struct {
		method, body string
		want         int
	}{
		{http.MethodPost, `{"query":""}`, http.StatusBadRequest},
		{http.MethodPost, `not json`, http.StatusBadRequest},
		{http.MethodPut, ``, http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, "/graphql", strings.NewReader(tc.body)))
		assert.Equal(t, tc.want, rec.Code, tc.method+" "+tc.body)
	}
}
