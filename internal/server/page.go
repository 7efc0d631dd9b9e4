package server

import (
	"html/template"

	"github.com/dbsmedya/gox3d/internal/scatter"
)

type pageData struct {
	Title         string
	Script        string
	Stylesheet    string
	Scene         template.HTML
	Controls      scatter.Controls
	Columns       []string
	Bands         []string
	RefreshMillis int64
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="text/javascript" src="{{.Script}}"></script>
<link rel="stylesheet" type="text/css" href="{{.Stylesheet}}">
<style>
body { font-family: sans-serif; }
#controls { margin: 8px 0; }
#controls label { margin-right: 12px; }
#status { color: #a00; margin-left: 12px; }
</style>
</head>
<body>
<div id="controls">
<label>X <select id="x">{{range .Columns}}<option value="{{.}}"{{if eq . $.Controls.X}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>Z <select id="z">{{range .Columns}}<option value="{{.}}"{{if eq . $.Controls.Z}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>Band <select id="band">{{range .Bands}}<option value="{{.}}"{{if eq . $.Controls.Band}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<button id="timelapse">Time lapse</button>
<button id="clusters">Clusters</button>
<button id="clear">Clear</button>
<a href="/preview.png" target="_blank">Preview</a>
<span id="status"></span>
</div>
<div id="chartholder">
{{.Scene}}
</div>
<script>
(function () {
  var refreshMillis = {{.RefreshMillis}};
  var status = document.getElementById("status");

  function post(url, body) {
    return fetch(url, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: body ? JSON.stringify(body) : null
    }).then(function (r) { return r.json(); }).then(function (s) {
      status.textContent = s.error || s.last_error || "";
      return reload();
    });
  }

  function reload() {
    return fetch("/scene").then(function (r) { return r.text(); }).then(function (text) {
      var next = new DOMParser().parseFromString(text, "text/html").querySelector("scene");
      var cur = document.querySelector("#chartholder scene");
      if (next && cur) { cur.replaceWith(next); }
    });
  }

  ["x", "z", "band"].forEach(function (id) {
    document.getElementById(id).addEventListener("change", function () {
      var body = {};
      body[id] = this.value;
      post("/controls", body);
    });
  });
  document.getElementById("timelapse").addEventListener("click", function () { post("/timelapse"); });
  document.getElementById("clusters").addEventListener("click", function () { post("/clusters"); });
  document.getElementById("clear").addEventListener("click", function () { post("/highlight/clear"); });

  document.getElementById("chartholder").addEventListener("click", function (e) {
    var shape = e.target.closest ? e.target.closest("shape[data-id]") : null;
    if (shape) { post("/points/" + shape.getAttribute("data-id") + "/toggle"); }
  });

  setInterval(function () {
    fetch("/state").then(function (r) { return r.json(); }).then(function (s) {
      if (s.time_lapse) { reload(); }
    });
  }, refreshMillis);
})();
</script>
</body>
</html>
`))
