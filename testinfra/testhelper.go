package testinfra

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// ExecuteRequest serves req with router and returns status, body and headers of the response.
func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, http.Header) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	bodyBytes, err := ioutil.ReadAll(w.Result().Body)
	if err != nil {
		panic(err)
	}
	return w.Code, string(bodyBytes), w.Header()
}
