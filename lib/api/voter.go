package api

import (
	"net/http"

	"conclave.network/conclave/lib/api/resource"
	"conclave.network/conclave/lib/httputils"
)

func (api NetworkHandlerAPI) GetVotersHandler(w http.ResponseWriter, r *http.Request) {
	var rs []resource.Resource
	for _, v := range api.engine.Voters() {
		rs = append(rs, resource.NewVoter(v))
	}

	// the registry is fixed and small, no pagination
	httputils.MustWriteJSON(w, 200, resource.NewResourceList(rs, r.URL.String(), "", ""))
}
