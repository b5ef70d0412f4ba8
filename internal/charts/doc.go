// Package charts renders the transaction charts.
//
// Visualizer turns an enriched table into seven chart specifications using
// the pure aggregations of package dataprocessing, and hands each to a
// Renderer. PlotRenderer is the gonum/plot implementation that writes PNG
// files; tests substitute a recording renderer so aggregation and chart
// selection can be checked without drawing.
package charts
