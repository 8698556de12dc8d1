package report

import "html/template"

var pageTmpl = template.Must(template.New("report").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto;">
  <p style="text-align: right; font-size: 0.8rem; color: #666; margin-bottom: 10px;">Data updated: {{.UpdatedAt}}</p>

  <h3 style="font-size: 1.1rem; margin-bottom: 15px; color: #333;">Short-Term Overheat / Oversold Panel</h3>

  <div style="display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin-bottom: 20px;">
  {{range .Cards}}
    <div style="padding: 12px; border-radius: 6px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); {{.CardStyle}}">
      <div style="font-weight: bold; font-size: 0.95rem; color: #333; margin-bottom: 8px;">{{.Name}}</div>
      <div style="display: flex; justify-content: space-between; align-items: center; margin-bottom: 8px;">
        <div>
          <div style="font-size: 0.7rem; color: #888; margin-bottom: 2px;">ETF day change</div>
          <div style="font-size: 1.4rem; font-weight: bold; color: {{.ChangeColor}}; line-height: 1;">{{.Change}}<span style="font-size: 0.8rem;">%</span></div>
        </div>
        <div style="text-align: right;">
          <div style="{{.StatusStyle}}">{{.StatusText}}</div>
        </div>
      </div>
      <div style="font-size: 0.75rem; color: #666; border-top: 1px solid rgba(0,0,0,0.05); padding-top: 6px; display: flex; justify-content: space-between;">
        <span>RSI(14): <strong>{{printf "%.1f" .RSI}}</strong></span>
        <span>BB: <strong>{{printf "%.2f" .PercentB}}</strong></span>
      </div>
    </div>
  {{end}}
  </div>

  <div style="font-size: 0.8rem; color: #666; background: #f9f9f9; padding: 12px; border-radius: 6px; margin-bottom: 40px; border: 1px solid #eee;">
    <strong>How to read the panel</strong><br>
    <ul style="margin: 5px 0 0 20px; padding: 0;">
      <li><strong>ETF day change</strong>: close-to-close change of the sector ETF.</li>
      <li><strong>Overheated</strong>: RSI(14) at 70 or above, or Bollinger (20d/2&sigma;) %B above 1.0 (upper band).</li>
      <li><strong>Oversold</strong>: RSI(14) at 30 or below, or %B below 0 (lower band).</li>
      <li><strong>BB</strong>: Bollinger %B. Above 1.0 means an upper-band breakout, below 0 a lower-band break.</li>
    </ul>
  </div>

  <h3 style="font-size: 1.1rem; margin-top: 40px; margin-bottom: 15px; color: #333;">Long-Term Performance Chart (base 100)</h3>

  {{if .Top}}
  <div style="background: #fff3e0; padding: 12px; border-radius: 6px; margin-bottom: 20px; border: 1px solid #ffe0b2;">
    <div style="font-weight:bold; color:#e65100; margin-bottom:8px; font-size:0.95rem;">Uptrend &times; Overheat Signals (Top 3)</div>
    <ul style="margin: 0; padding-left: 20px; color: #333; font-size: 0.9rem;">
      {{range .Top}}<li><strong>{{.Name}}</strong> <span style="color:#666; font-size:0.85rem;">(300-day index: {{printf "%.1f" .IndexValue}} / RSI: {{printf "%.1f" .RSI}})</span></li>{{end}}
    </ul>
  </div>
  {{end}}

  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>

  <div style="position: relative; width: 100%; height: 500px; border: 1px solid #eee; border-radius: 4px; padding: 5px;">
    <canvas id="{{.ChartID}}"></canvas>
  </div>

  <div style="font-size: 0.8rem; color: #666; background: #f9f9f9; padding: 12px; border-radius: 6px; margin-top: 15px; border: 1px solid #eee;">
    <strong>Chart notes</strong><br>
    <ul style="margin: 5px 0 0 20px; padding: 0;">
      <li>Each series is indexed to 100 at the close roughly 300 trading days ago.</li>
      <li>Tap a legend marker to toggle that sector on or off.</li>
      <li>Tap a point on the chart for the exact date and index value.</li>
    </ul>
  </div>

  <script>
  (function() {
    const ctx = document.getElementById('{{.ChartID}}').getContext('2d');
    new Chart(ctx, {
      type: 'line',
      data: {
        labels: {{.Labels}},
        datasets: {{.Datasets}}
      },
      options: {
        responsive: true,
        maintainAspectRatio: false,
        interaction: { mode: 'index', intersect: false },
        plugins: {
          legend: {
            position: 'bottom',
            labels: { usePointStyle: true, boxWidth: 8, padding: 15, font: { size: 11 } }
          },
          tooltip: { position: 'nearest' }
        },
        scales: {
          y: { title: { display: true, text: 'Index' }, grid: { color: '#f0f0f0' } },
          x: { grid: { display: false }, ticks: { maxTicksLimit: 10 } }
        },
        elements: { point: { radius: 0, hitRadius: 10, hoverRadius: 5 } }
      }
    });
  })();
  </script>
</div>
`))
