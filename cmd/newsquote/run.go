package main

// Run executes the run command: extraction followed by parsing.
func (c *RunCmd) Run(deps *Dependencies) error {
	inputs, err := readInputs(deps, c.Input)
	if err != nil {
		return err
	}

	extResult, recs, err := deps.Extract.Run(deps.Ctx, inputs, extractProgress(deps))
	if err != nil {
		return err
	}

	if c.Intermediate != "" {
		if err := writeExtractions(c.Intermediate, recs); err != nil {
			return err
		}
	}
	printExtractStats(deps, extResult, c.Intermediate)

	parseResult, rows, err := deps.Parse.Run(deps.Ctx, recs, parseProgress(deps))
	if err != nil {
		return err
	}

	if err := writeRows(c.Output, rows); err != nil {
		return err
	}

	printParseStats(deps, parseResult, c.Output)
	return nil
}
