package params

// Shared returns the built-in table of params shared across the ML
// estimators, in the order they are emitted.
func Shared() Table {
	return Table{
		Params: []Spec{
			{Name: "maxIter", Doc: "max number of iterations (>= 0)"},
			{Name: "regParam", Doc: "regularization parameter (>= 0)"},
			{Name: "featuresCol", Doc: "features column name", Default: "'features'"},
			{Name: "labelCol", Doc: "label column name", Default: "'label'"},
			{Name: "predictionCol", Doc: "prediction column name", Default: "'prediction'"},
			{
				Name: "probabilityCol",
				Doc: "Column name for predicted class conditional probabilities. " +
					"Note: Not all models output well-calibrated probability estimates! These probabilities " +
					"should be treated as confidences, not precise probabilities.",
				Default: "'probability'",
			},
			{Name: "rawPredictionCol", Doc: "raw prediction (a.k.a. confidence) column name", Default: "'rawPrediction'"},
			{Name: "inputCol", Doc: "input column name"},
			{Name: "inputCols", Doc: "input column names"},
			{Name: "outputCol", Doc: "output column name"},
			{Name: "numFeatures", Doc: "number of features"},
			{Name: "checkpointInterval", Doc: "checkpoint interval (>= 1)"},
			{Name: "seed", Doc: "random seed", Default: "hash(type(self).__name__)"},
			{Name: "tol", Doc: "the convergence tolerance for iterative algorithms"},
			{Name: "stepSize", Doc: "Step size to be used for each iteration of optimization."},
		},
		Group: &Group{
			Class: "DecisionTreeParams",
			Title: "Decision Tree",
			Params: []GroupSpec{
				{
					Name: "maxDepth",
					Doc: "Maximum depth of the tree. (>= 0) E.g., depth 0 means 1 leaf node; " +
						"depth 1 means 1 internal node + 2 leaf nodes.",
				},
				{
					Name: "maxBins",
					Doc: "Max number of bins for" +
						" discretizing continuous features.  Must be >=2 and >= number of categories for any" +
						" categorical feature.",
				},
				{
					Name: "minInstancesPerNode",
					Doc: "Minimum number of instances each child must have after split. " +
						"If a split causes the left or right child to have fewer than minInstancesPerNode, the " +
						"split will be discarded as invalid. Should be >= 1.",
				},
				{Name: "minInfoGain", Doc: "Minimum information gain for a split to be considered at a tree node."},
				{Name: "maxMemoryInMB", Doc: "Maximum memory in MB allocated to histogram aggregation."},
				{
					Name: "cacheNodeIds",
					Doc: "If false, the algorithm will pass trees to executors to match " +
						"instances with nodes. If true, the algorithm will cache node IDs for each instance. " +
						"Caching can speed up training of deeper trees.",
				},
			},
		},
	}
}
