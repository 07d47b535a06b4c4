package cli

import (
	"github.com/spf13/cobra"

	"github.com/neuronlabs/includes/codec"
)

// relatedOutput is the related objects of a single primary resource.
type relatedOutput struct {
	Resource codec.ResourceIdentifier `json:"resource"`
	Related  interface{}              `json:"related"`
}

func (c *command) newRelatedCmd() *cobra.Command {
	relatedCmd := &cobra.Command{
		Use:   "related <relationship> [file]",
		Short: "Lists the objects related to the primary resources.",
		Long: `Reads the JSON:API document and writes the resolved objects related to each
primary resource by the 'relationship'. The references not found in the included
resources are skipped unless the miss policy says otherwise.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.runRelated,
	}
	relatedCmd.Flags().Bool("first", false, "write only the first related object of each resource")
	return relatedCmd
}

func (c *command) runRelated(cmd *cobra.Command, args []string) error {
	doc, err := c.readDocument(args[1:])
	if err != nil {
		return err
	}
	first, err := cmd.Flags().GetBool("first")
	if err != nil {
		return err
	}

	name := args[0]
	var resources []*codec.Resource
	switch data := doc.Data.(type) {
	case []*codec.Resource:
		resources = data
	case []interface{}:
		// Leniently decoded primary data keeps the raw values if any of them is not a resource.
		resources = codec.ResourcesFrom(data)
	default:
		if res, ok := codec.ResourceFrom(data); ok {
			resources = []*codec.Resource{res}
		}
	}

	outputs := make([]relatedOutput, len(resources))
	for i, res := range resources {
		outputs[i].Resource = res.Identifier()
		if first {
			outputs[i].Related = c.resolver.Related(res, name, doc.Included)
		} else {
			outputs[i].Related = c.resolver.RelatedList(res, name, doc.Included)
		}
	}
	return c.write(cmd, outputs)
}
