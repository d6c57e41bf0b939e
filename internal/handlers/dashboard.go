package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboard serves the single-page reefer overview. The page is plain
// HTML/JS over the JSON API plus the /ws live feed; no build step.
func (h *Handler) dashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardPage))
}

const dashboardPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reefer Overview</title>
<style>
  body { font-family: sans-serif; margin: 0; background: #f5f6f8; color: #1c2733; }
  header { background: #14304a; color: #fff; padding: 12px 20px; }
  header h1 { margin: 0; font-size: 1.3em; }
  .controls { display: flex; flex-wrap: wrap; gap: 12px; padding: 12px 20px; align-items: end; }
  .controls label { display: block; font-size: 0.8em; color: #5a6b7b; }
  .metrics { display: flex; gap: 16px; padding: 0 20px 12px; }
  .metric { background: #fff; border-radius: 6px; padding: 12px 18px; min-width: 140px;
            box-shadow: 0 1px 2px rgba(0,0,0,0.08); }
  .metric .label { font-size: 0.75em; color: #5a6b7b; }
  .metric .value { font-size: 1.5em; }
  .violation { color: #c0392b; }
  #chart { background: #fff; margin: 0 20px; border-radius: 6px;
           box-shadow: 0 1px 2px rgba(0,0,0,0.08); }
  #empty { margin: 20px; color: #5a6b7b; display: none; }
  table { border-collapse: collapse; margin: 16px 20px; background: #fff; }
  th, td { border: 1px solid #dde3e9; padding: 4px 10px; font-size: 0.85em; }
</style>
</head>
<body>
<header><h1>Reefer Overview</h1></header>
<div class="controls">
  <div><label>Asset</label><select id="asset"></select></div>
  <div><label>Range</label>
    <select id="range">
      <option value="24">Last 24 hours</option>
      <option value="168">Last 7 days</option>
      <option value="720">Last 30 days</option>
    </select></div>
  <div><label>Unit</label>
    <select id="unit"><option value="c">&deg;C</option><option value="f">&deg;F</option></select></div>
  <div><label>Min</label><input id="min" type="number" step="1" value="1" size="4"></div>
  <div><label>Max</label><input id="max" type="number" step="1" value="6" size="4"></div>
  <div><button id="reload">Refresh</button></div>
</div>
<div class="metrics">
  <div class="metric"><div class="label">Current temperature</div><div class="value" id="liveTemp">&ndash;</div></div>
  <div class="metric"><div class="label">Door</div><div class="value" id="liveDoor">&ndash;</div></div>
  <div class="metric"><div class="label">Average</div><div class="value" id="statAvg">&ndash;</div></div>
  <div class="metric"><div class="label">Min / Max</div><div class="value" id="statMinMax">&ndash;</div></div>
  <div class="metric"><div class="label">Door opens</div><div class="value" id="statDoors">&ndash;</div></div>
  <div class="metric"><div class="label">Violations</div><div class="value violation" id="statViolations">&ndash;</div></div>
</div>
<canvas id="chart" width="1160" height="420"></canvas>
<div id="empty">No temperature data available for the selected time range.</div>
<table id="violations" style="display:none">
  <thead><tr><th>Time</th><th>Temperature</th></tr></thead><tbody></tbody>
</table>
<script>
var ws = null;
var sym = function() { return document.getElementById('unit').value === 'f' ? '°F' : '°C'; };

function loadAssets() {
  fetch('/api/v1/assets').then(function(r) { return r.json(); }).then(function(body) {
    var sel = document.getElementById('asset');
    sel.innerHTML = '';
    (body.assets || []).forEach(function(a) {
      var opt = document.createElement('option');
      opt.value = a.id;
      opt.textContent = a.name || ('Asset ' + a.id);
      sel.appendChild(opt);
    });
    if (sel.value) { reload(); }
  });
}

function connectLive(assetId) {
  if (ws) { ws.close(); }
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  ws = new WebSocket(proto + location.host + '/ws?asset=' + assetId + '&unit=' + document.getElementById('unit').value);
  ws.onmessage = function(msg) {
    var env = JSON.parse(msg.data);
    if (env.type !== 'status') { return; }
    var s = env.data;
    document.getElementById('liveTemp').textContent =
      (s.temperature == null) ? 'N/A' : s.temperature.toFixed(1) + sym();
    document.getElementById('liveDoor').textContent =
      s.door === 'unknown' ? 'No sensor' : s.door;
  };
}

function drawChart(series) {
  var canvas = document.getElementById('chart');
  var ctx = canvas.getContext('2d');
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  var samples = series.samples || [];
  if (samples.length === 0) { return; }
  var pad = 48, w = canvas.width - 2 * pad, hgt = canvas.height - 2 * pad;
  var t0 = new Date(samples[0].time).getTime();
  var t1 = new Date(samples[samples.length - 1].time).getTime() || t0 + 1;
  var lo = Math.min(series.stats.min, series.thresholds.min) - 1;
  var hi = Math.max(series.stats.max, series.thresholds.max) + 1;
  var x = function(t) { return pad + w * (t - t0) / Math.max(t1 - t0, 1); };
  var y = function(v) { return pad + hgt * (1 - (v - lo) / (hi - lo)); };

  // threshold band
  [series.thresholds.min, series.thresholds.max].forEach(function(th, i) {
    ctx.strokeStyle = i === 0 ? '#2471a3' : '#c0392b';
    ctx.setLineDash([6, 4]);
    ctx.beginPath(); ctx.moveTo(pad, y(th)); ctx.lineTo(pad + w, y(th)); ctx.stroke();
  });
  ctx.setLineDash([]);

  // door-open markers
  (series.events || []).forEach(function(ev) {
    if (!ev.opened) { return; }
    var ex = x(new Date(ev.time).getTime());
    ctx.strokeStyle = 'orange';
    ctx.setLineDash([2, 3]);
    ctx.beginPath(); ctx.moveTo(ex, pad); ctx.lineTo(ex, pad + hgt); ctx.stroke();
  });
  ctx.setLineDash([]);

  // temperature line
  ctx.strokeStyle = '#1f77b4'; ctx.lineWidth = 2; ctx.beginPath();
  samples.forEach(function(s, i) {
    var px = x(new Date(s.time).getTime()), py = y(s.temperature);
    if (i === 0) { ctx.moveTo(px, py); } else { ctx.lineTo(px, py); }
  });
  ctx.stroke();

  // violation dots
  ctx.fillStyle = '#c0392b';
  samples.forEach(function(s) {
    if (!s.violation) { return; }
    ctx.beginPath();
    ctx.arc(x(new Date(s.time).getTime()), y(s.temperature), 3, 0, 2 * Math.PI);
    ctx.fill();
  });
}

function reload() {
  var assetId = document.getElementById('asset').value;
  if (!assetId) { return; }
  var hours = parseInt(document.getElementById('range').value, 10);
  var to = new Date();
  var from = new Date(to.getTime() - hours * 3600 * 1000);
  var params = new URLSearchParams({
    from: from.toISOString(), to: to.toISOString(),
    unit: document.getElementById('unit').value,
    min: document.getElementById('min').value,
    max: document.getElementById('max').value
  });
  fetch('/api/v1/assets/' + assetId + '/history?' + params)
    .then(function(r) { return r.json(); })
    .then(function(series) {
      document.getElementById('empty').style.display = series.empty ? 'block' : 'none';
      document.getElementById('statAvg').textContent = series.empty ? '–' : series.stats.average.toFixed(1) + sym();
      document.getElementById('statMinMax').textContent = series.empty ? '–' :
        series.stats.min.toFixed(1) + ' / ' + series.stats.max.toFixed(1) + sym();
      document.getElementById('statDoors').textContent = series.stats.door_open_count;
      document.getElementById('statViolations').textContent = series.stats.violation_count;
      drawChart(series);
      var table = document.getElementById('violations');
      var body = table.querySelector('tbody');
      body.innerHTML = '';
      var offenders = (series.samples || []).filter(function(s) { return s.violation; });
      table.style.display = offenders.length ? 'table' : 'none';
      offenders.forEach(function(s) {
        var row = document.createElement('tr');
        row.innerHTML = '<td>' + new Date(s.time).toLocaleString() + '</td><td>' +
          s.temperature.toFixed(1) + sym() + '</td>';
        body.appendChild(row);
      });
    });
  connectLive(assetId);
}

document.getElementById('reload').onclick = reload;
document.getElementById('asset').onchange = reload;
document.getElementById('range').onchange = reload;
document.getElementById('unit').onchange = reload;
loadAssets();
</script>
</body>
</html>`
