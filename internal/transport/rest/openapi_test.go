package rest_test

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// The served contract must stay loadable and cover the routes the router
// mounts.
var _ = Describe("OpenAPI contract", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("should document every API operation", func() {
		expected := map[string][]string{
			"/auth/register":                  {http.MethodPost},
			"/auth/login":                     {http.MethodPost},
			"/ous":                            {http.MethodGet},
			"/divisions":                      {http.MethodGet, http.MethodPost},
			"/divisions/divisions-by-ou":      {http.MethodGet},
			"/credentials":                    {http.MethodGet, http.MethodPost},
			"/credentials/credentials":        {http.MethodGet},
			"/credentials/{id}":               {http.MethodPatch},
			"/users/user-info":                {http.MethodGet},
			"/users/admin-view":               {http.MethodGet},
			"/users/change-role/{userId}":     {http.MethodPatch},
			"/users/{userId}/assign-division": {http.MethodPost},
			"/users/{userId}/remove-division": {http.MethodDelete},
			"/users/{userId}/assign-ou":       {http.MethodPost},
			"/users/{userId}/remove-ou":       {http.MethodDelete},
		}

		for path, methods := range expected {
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), "path %s missing from contract", path)
			for _, method := range methods {
				Expect(item.GetOperation(method)).NotTo(BeNil(), "%s %s missing from contract", method, path)
			}
		}
	})

	It("should require bearer auth on the protected surface", func() {
		item := doc.Paths.Find("/credentials")
		Expect(item).NotTo(BeNil())
		op := item.GetOperation(http.MethodGet)
		Expect(op.Security).NotTo(BeNil())
		Expect(*op.Security).NotTo(BeEmpty())
	})
})
