// Package viz holds the terminal styles and color themes shared by the CLI,
// the interactive explorer and the chart renderers.
package viz
