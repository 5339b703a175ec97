// pkg/project/scaffold.go
package project

import "fmt"

// ExampleDataLines is the CSV written to data/input.csv for new pipelines.
var ExampleDataLines = []string{"a,b", "1,0", "2,1", "3,2"}

// InputName, OutputName and ParamName derive the dataset names a scaffolded
// pipeline uses.
func InputName(pipeline string) string  { return pipeline + "-input" }
func OutputName(pipeline string) string { return pipeline + "-output" }
func ParamName(pipeline string) string  { return pipeline + "-param" }

// PipelineTemplate returns the default pipeline module: one add_column node
// reading the example input and the pipeline parameter.
func PipelineTemplate(pipeline string) []string {
	return []string{
		"from kedro.pipeline import Pipeline, node",
		"",
		"def add_column(data, add):",
		"    return data.assign(c=data.a + data.b + add)",
		"",
		"def create_pipeline(**kwargs) -> Pipeline:",
		"    return Pipeline([node(func=add_column,",
		fmt.Sprintf(`        inputs=["%s",`, InputName(pipeline)),
		fmt.Sprintf(`                "params:%s"],`, ParamName(pipeline)),
		fmt.Sprintf(`        outputs="%s")])`, OutputName(pipeline)),
	}
}

// ExampleCatalog returns the catalog of a scaffolded pipeline.
func ExampleCatalog(pipeline string) map[string]any {
	return map[string]any{
		InputName(pipeline): map[string]any{
			"type":     "pandas.CSVDataSet",
			"filepath": ExampleData,
		},
		OutputName(pipeline): map[string]any{
			"type":     "pandas.CSVDataSet",
			"filepath": ExampleOutput,
		},
	}
}

// ExampleParameters returns the parameters of a scaffolded pipeline.
func ExampleParameters(pipeline string) map[string]any {
	return map[string]any{ParamName(pipeline): 1}
}
