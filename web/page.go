package web

// indexHTML is the whole client. It connects to /ws, draws every frame
// onto the canvas and sends the full parameter map whenever a control
// changes; the server side treats each message as a fresh request.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>mandelscope</title>
<style>
body { background: #101018; color: #d8d8e0; font: 13px monospace; margin: 12px; }
canvas { border: 1px solid #303048; image-rendering: pixelated; }
#bar { margin-bottom: 8px; }
#bar input, #bar select { background: #181824; color: #d8d8e0; border: 1px solid #303048; }
#status { margin-top: 6px; color: #9090a8; }
</style>
</head>
<body>
<div id="bar">
zoom <input id="zoomLevel" type="range" min="1" max="20" step="0.25" value="1">
offset <input id="centerOffset" type="number" step="0.05" value="0" size="6">
iterations <input id="maxIterations" type="number" min="10" max="1000" step="50" value="100" size="5">
scheme <select id="colorScheme">
<option value="0">Blue-Gold</option>
<option value="1">Fire</option>
<option value="2">Ocean</option>
<option value="3">Rainbow</option>
<option value="4">Grayscale</option>
</select>
</div>
<canvas id="view" width="768" height="512"></canvas>
<div id="status">connecting...</div>
<script>
(function () {
	var canvas = document.getElementById("view");
	var ctx = canvas.getContext("2d");
	var status = document.getElementById("status");
	var ids = ["maxIterations", "colorScheme", "zoomLevel", "centerOffset"];
	var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");

	ws.onmessage = function (ev) {
		var m = JSON.parse(ev.data);
		var img = new Image();
		img.onload = function () {
			if (canvas.width !== m.width || canvas.height !== m.height) {
				canvas.width = m.width;
				canvas.height = m.height;
			}
			ctx.drawImage(img, 0, 0);
		};
		img.src = "data:image/png;base64," + m.png;
		status.textContent = m.state + (m.converged ? "" : "  rendering pass " + m.pass + "/" + m.total);
	};
	ws.onclose = function () { status.textContent = "disconnected"; };

	function send() {
		if (ws.readyState !== WebSocket.OPEN) { return; }
		var params = {};
		ids.forEach(function (id) {
			params[id] = Number(document.getElementById(id).value);
		});
		ws.send(JSON.stringify({ type: "params", params: params }));
	}
	ids.forEach(function (id) {
		document.getElementById(id).addEventListener("input", send);
	});
	ws.onopen = send;
})();
</script>
</body>
</html>
`
