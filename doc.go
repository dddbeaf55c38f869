// Package dbscan implements Density-Based Spatial Clustering of Applications
// with Noise (DBSCAN) and out-of-sample prediction against a fit model.
//
// DBSCAN grows clusters from core points, points whose Eps-neighbourhood
// holds at least MinPoints points (themselves included), by chaining
// neighbourhoods. It finds clusters of arbitrary shape and leaves points
// reachable from no core point as noise.
//
// Basic usage:
//
//	cfg := dbscan.DefaultConfig[float64]()
//	cfg.Eps = 0.3
//	cfg.MinPoints = 4
//	model, err := dbscan.FitRows(points, cfg)
//	// model.Labels[i] is the cluster of point i (dbscan.Noise = unassigned)
//
// Classifying new points against the training set:
//
//	preds, err := model.PredictRows(points, newPoints)
//	// preds[i].Kind is PredictionCore, PredictionBorder or PredictionNoise
//	// preds[i].Labels lists the clusters of the point's training neighbours
//
// # Border points
//
// By default only core points are labelled. Set Config.IncludeBorders to
// also label the non-core points that lie within Eps of a core point. A
// border point within reach of two clusters takes the label of whichever
// cluster's expansion reaches it last; expansion order is fixed by row order
// and index order, so the outcome is reproducible.
//
// # Spatial indexes
//
// Region queries go through a [SpatialIndex]. Config.Index chooses one:
//
//	cfg.Index = dbscan.IndexKDTree   // axis-aligned KD-tree
//	cfg.Index = dbscan.IndexBallTree // ball tree, better for many dimensions
//	cfg.Index = dbscan.IndexGonum    // gonum.org/v1/gonum/spatial/kdtree
//	cfg.Index = dbscan.IndexBrute    // linear scan
//
// All indexes return the same neighbourhoods, so the choice affects speed
// only.
//
// # Related packages
//
// Package kmeans clusters the same [Matrix] type with Lloyd's k-means.
// [FromGonum] and [ToGonum] convert to and from gonum matrices.
package dbscan
