package health

import (
	"html/template"
	"io"
)

// DashboardData feeds the status page.
type DashboardData struct {
	Site   string
	Result CollectResult
}

// Healthy reports whether the headline should read as operational.
func (d DashboardData) Healthy() bool {
	return d.Result.Status == "ok"
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>{{.Site}} · Estado del sitio</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    :root { --brand: #0f3d5e; --accent: #e2a400; --bg: #f6f7f9; --muted: #64748b; }
    body { background: var(--bg); color: var(--brand); font-family: system-ui, sans-serif; margin: 0; display: flex; justify-content: center; }
    .container { width: 100%; max-width: 1000px; padding: 40px 20px; }
    h1 { font-size: 44px; font-weight: 900; letter-spacing: -2px; margin: 0 0 8px; }
    h1.issue { color: #b91c1c; }
    .subtext { color: var(--muted); font-weight: 700; margin-bottom: 30px; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); background: #fff; border-radius: 24px; box-shadow: 0 20px 60px -20px rgba(15,61,94,.15); }
    .col { padding: 32px; border-right: 1px solid rgba(0,0,0,.05); }
    .col:last-child { border-right: none; }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 900; letter-spacing: 2px; color: #94a3b8; margin-bottom: 20px; }
    .big { font-size: 36px; font-weight: 900; margin-bottom: 10px; }
    .row { display: flex; justify-content: space-between; padding: 8px 0; font-size: 14px; font-weight: 700; border-bottom: 1px solid rgba(0,0,0,.03); }
    .pill { padding: 4px 10px; border-radius: 10px; font-size: 11px; font-weight: 900; }
    .ok { background: rgba(15,61,94,.08); color: var(--brand); }
    .err { background: rgba(239,68,68,.08); color: #ef4444; }
    .footer { margin-top: 20px; font-family: monospace; font-size: 13px; display: flex; justify-content: space-between; }
    #errors { margin-top: 30px; font-size: 13px; }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } .col { border-right: none; } }
  </style>
</head>
<body>
  <div class="container">
    <h1 id="headline" class="{{if not .Healthy}}issue{{end}}">{{if .Healthy}}All Systems Operational{{else}}System Issues Detected{{end}}</h1>
    <p class="subtext">Listado de inmuebles, mapa y contenido editorial.</p>
    <div class="grid">
      <div class="col">
        <div class="label">Traffic</div>
        <div class="big" id="total-req">{{.Result.Traffic.TotalRequests}}</div>
        <div class="row"><span>Successful</span><span id="success-count">{{.Result.Traffic.SuccessCount}}</span></div>
        <div class="row"><span>Failed</span><span id="failed-count">{{.Result.Traffic.FailedCount}}</span></div>
        <div class="row"><span>Success Rate</span><span id="success-rate">{{.Result.Traffic.SuccessRate}}%</span></div>
        <div class="row"><span>Avg Latency</span><span id="avg-time">{{.Result.Traffic.AvgResponseTime}}ms</span></div>
      </div>
      <div class="col">
        <div class="label">Runtime</div>
        <div class="big" id="uptime">{{.Result.Runtime.UptimeSeconds}}s</div>
        <div class="row"><span>Heap</span><span id="mem-heap">{{.Result.Runtime.Memory.HeapUsed}} MB</span></div>
        <div class="row"><span>Goroutines</span><span id="goroutines">{{.Result.Runtime.Goroutines}}</span></div>
        <div class="row"><span>Platform</span><span>{{.Result.Runtime.Platform}}</span></div>
        <div class="row"><span>Go</span><span>{{.Result.Runtime.GoVersion}}</span></div>
      </div>
      <div class="col">
        <div class="label">Dependencies</div>
        {{range $name, $dep := .Result.Dependencies}}
        <div class="row"><span>{{$name}}</span><span id="dep-{{$name}}" class="pill {{if or (eq $dep.Status "connected") (eq $dep.Status "reachable") (eq $dep.Status "disabled")}}ok{{else}}err{{end}}">{{$dep.Status}}{{with $dep.PingMs}} · {{.}} ms{{end}}</span></div>
        {{end}}
      </div>
    </div>
    <div class="footer">
      {{with .Result.Traffic.LastRequest}}<span>LAST INBOUND {{index . "method"}} {{index . "path"}}</span>{{else}}<span>LAST INBOUND -</span>{{end}}
      <a href="#" onclick="showErrors(); return false;">View Error Log</a>
    </div>
    <div id="errors"></div>
  </div>
  <script id="health-data" type="application/json">{{.Result}}</script>
  <script>
    const fmt = (s) => { const h = Math.floor(s / 3600); const m = Math.floor((s % 3600) / 60); return h + 'h ' + m + 'm ' + (s % 60) + 's'; };
    const updateUI = (d) => {
      document.getElementById('total-req').innerText = d.traffic.totalRequests;
      document.getElementById('success-count').innerText = d.traffic.successCount;
      document.getElementById('failed-count').innerText = d.traffic.failedCount;
      document.getElementById('success-rate').innerText = d.traffic.successRate + '%';
      document.getElementById('avg-time').innerText = d.traffic.avgResponseTime + 'ms';
      document.getElementById('uptime').innerText = fmt(d.runtime.uptimeSeconds);
      document.getElementById('mem-heap').innerText = d.runtime.memory.heapUsed + ' MB';
      document.getElementById('goroutines').innerText = d.runtime.goroutines;
      const hl = document.getElementById('headline');
      hl.className = d.status === 'ok' ? '' : 'issue';
      hl.innerText = d.status === 'ok' ? 'All Systems Operational' : 'System Issues Detected';
    };
    async function tick() { try { const r = await fetch('/health/json'); updateUI(await r.json()); } catch (e) {} }
    async function showErrors() {
      const box = document.getElementById('errors');
      box.textContent = 'Fetching logs...';
      try {
        const list = await (await fetch('/health/errors')).json();
        box.textContent = '';
        if (list.length === 0) { box.textContent = 'No internal errors recorded.'; return; }
        list.forEach(e => { const p = document.createElement('p'); p.textContent = new Date(e.time).toLocaleString() + ' ' + e.method + ' ' + e.path + ' ' + e.status + ' ' + e.message; box.appendChild(p); });
      } catch (e) { box.textContent = 'Error loading logs.'; }
    }
    updateUI(JSON.parse(document.getElementById('health-data').textContent));
    setInterval(tick, 15000);
  </script>
</body>
</html>
`))

// RenderDashboard writes the status page for a collected result.
func RenderDashboard(w io.Writer, site string, result CollectResult) error {
	return dashboardTmpl.Execute(w, DashboardData{Site: site, Result: result})
}
