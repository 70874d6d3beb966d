// Package sink renders computed layouts and datasets to output artifacts.
//
// Each renderer is a pure function from a [chart.Layout] (or a dataset) to
// bytes, configured with functional options:
//
//   - RenderSVG: vector bubble chart with optional labels and legend
//   - RenderPNG: raster bubble chart drawn with fogleman/gg
//   - RenderJSON: the layout itself, as a pretty-printed artifact
//   - RenderCSV / RenderTSV: RAWGraphs-ready circle-packing export
//   - RenderBoxPlot, RenderScatter, RenderHeatmap: statistical PNG
//     charts over grouped samples, paired series, and correlation matrices
//
// Renderers never touch the filesystem; callers decide where bytes go.
package sink
