// Package viz renders rolling loss curves for the terminal.
//
//   - [RenderCurve] and [RenderComparison]: asciigraph line charts sized
//     from the chart viewport width
//   - [Theme]: named palettes shared by the charts and the TUI styles
//   - [Summary]: the applied parameter readout printed beside a chart
package viz
