// Package services implements the driving port interfaces.
// Services contain the pipeline orchestration and call driven ports
// (fetcher, extractor, segmenter, trainer, manifest) through interfaces.
package services
