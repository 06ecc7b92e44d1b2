// Package cmd implements the command-line interface of tcio. It provides a
// hierarchical command structure for running solutions and preparing their
// input.
//
// The package is organized into several subpackages:
//
//   - run: Runs a registered solution against multi-case input
//   - convert: Converts LeetCode example inputs into multi-case input
//   - bench: Throughput testing tool for the codec
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See tcio -help for a list of all commands.
package cmd
