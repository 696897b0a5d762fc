package main

import (
	"github.com/indigo-web/asyncjson/http"
	"github.com/indigo-web/asyncjson/jsondoc"
	json "github.com/json-iterator/go"
)

func echo(req *http.Request, doc jsondoc.Document) {
	resp, err := req.NewResponse().TryJSON(json.RawMessage(doc.Raw()))
	if err != nil {
		req.Fail(err)
		return
	}

	req.Respond(resp)
}

type ingestion struct {
	Fragments int `json:"fragments"`
	Bytes     int `json:"bytes"`
	Total     int `json:"total"`
}

func ingest(req *http.Request, fragment *jsondoc.Text) {
	state, ok := req.Data.(*ingestion)
	if !ok {
		state = new(ingestion)
		req.Data = state
	}

	state.Fragments++
	state.Bytes += fragment.Len()
	if !req.Env.Final {
		return
	}

	state.Total = req.Env.Total
	resp, err := req.NewResponse().TryJSON(state)
	if err != nil {
		req.Fail(err)
		return
	}

	req.Log().WithField("fragments", state.Fragments).Debug("ingested")
	req.Respond(resp)
}
