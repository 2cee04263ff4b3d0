package playground

const pageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tooltip playground</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
#stage { position: relative; height: 240px; border: 1px dashed #bbb; }
#trigger { position: absolute; left: 100px; top: 100px; }
#tip { position: absolute; background: #222; color: #fff; padding: 4px 8px; border-radius: 4px; font-size: 13px; }
#tip[hidden] { display: none; }
pre { background: #f6f6f6; padding: 1rem; overflow: auto; }
fieldset { margin: 1rem 0; }
</style>
</head>
<body>
<h1>Tooltip playground</h1>
<fieldset>
  <label>trigger <input id="cfg-trigger" value="hover,focus"></label>
  <label>delayShow <input id="cfg-show" type="number" value="0" size="5"></label>
  <label>delayHide <input id="cfg-hide" type="number" value="0" size="5"></label>
  <label>placement <input id="cfg-placement" value="top" size="8"></label>
  <label><input id="cfg-interactive" type="checkbox"> interactive</label>
  <label><input id="cfg-escape" type="checkbox"> closeOnEscape</label>
  <button id="apply">apply</button>
</fieldset>
<div id="stage">
  <button id="trigger">Hover me</button>
  <div id="tip" hidden>Hello from the playground</div>
</div>
<pre id="state">connecting...</pre>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws" + location.search);
  var trigger = document.getElementById("trigger");
  var tip = document.getElementById("tip");
  var stage = document.getElementById("stage");
  var out = document.getElementById("state");

  function send(msg) { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); }
  function gesture(event, target, extra) {
    var msg = {type: "event", event: event, target: target};
    for (var k in extra || {}) msg[k] = extra[k];
    send(msg);
  }

  trigger.addEventListener("mouseenter", function () { gesture("hover", "trigger"); });
  trigger.addEventListener("mouseleave", function () { gesture("unhover", "trigger"); });
  trigger.addEventListener("click", function () { gesture("click", "trigger"); });
  trigger.addEventListener("contextmenu", function (e) { e.preventDefault(); gesture("right-click", "trigger"); });
  trigger.addEventListener("focus", function () { gesture("focus", "trigger"); });
  trigger.addEventListener("blur", function () { gesture("blur", "trigger"); });
  trigger.addEventListener("mousemove", function (e) { gesture("move", "trigger", {x: e.clientX, y: e.clientY}); });
  tip.addEventListener("mouseenter", function () { gesture("hover", "tooltip"); });
  tip.addEventListener("mouseleave", function () { gesture("unhover", "tooltip"); });
  stage.addEventListener("mousedown", function (e) {
    if (e.target === stage) gesture("click", "outside");
  });
  document.addEventListener("keydown", function (e) { gesture("press", "body", {key: e.key}); });

  document.getElementById("apply").addEventListener("click", function () {
    send({type: "configure", config: {
      trigger: document.getElementById("cfg-trigger").value.split(",").map(function (s) { return s.trim(); }).filter(Boolean),
      delayShow: parseInt(document.getElementById("cfg-show").value, 10) || 0,
      delayHide: parseInt(document.getElementById("cfg-hide").value, 10) || 0,
      placement: document.getElementById("cfg-placement").value,
      interactive: document.getElementById("cfg-interactive").checked,
      closeOnEscape: document.getElementById("cfg-escape").checked
    }});
  });

  ws.onmessage = function (e) {
    var msg = JSON.parse(e.data);
    out.textContent = JSON.stringify(msg, null, 2);
    if (msg.type !== "state") return;
    tip.hidden = !msg.mounted;
    if (msg.tooltip && msg.tooltip.style) {
      var s = msg.tooltip.style;
      tip.style.transform = s.transform || "";
    }
  };
  ws.onclose = function () { out.textContent += "\n(disconnected)"; };
})();
</script>
</body>
</html>
`
