package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		pingCommand(r),
		gigsCommand(r),
		staffCommand(r),
	}
}

func pingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Connect and list the collections of every configured database",
		Action: r.Ping,
	}
}

func gigsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "gigs",
		Usage: "Gig template operations",
		Commands: []*cli.Command{
			{
				Name:  "upcoming",
				Usage: "Print the upcoming gigs as the API expands them",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GigsUpcoming,
			},
			{
				Name:  "add-test-date",
				Usage: "Clone a template with one extra future event date",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "template",
						Aliases:  []string{"t"},
						Usage:    "Template _id to clone",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "_id of the clone (default <template>-test)",
					},
					&cli.IntFlag{
						Name:  "months",
						Usage: "Months from now for the new date",
						Value: 3,
					},
				},
				Action: r.GigsAddTestDate,
			},
		},
	}
}

func staffCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "staff",
		Usage: "Team member maintenance",
		Commands: []*cli.Command{
			{
				Name:  "deactivate",
				Usage: "Hide a member from the band members list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Exact member name", Required: true},
				},
				Action: r.StaffDeactivate,
			},
			{
				Name:  "set",
				Usage: "Set one field of a member",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Exact member name", Required: true},
					&cli.StringFlag{Name: "field", Usage: "Field to set", Required: true},
					&cli.StringFlag{Name: "value", Usage: "New value; true/false and integers are typed", Required: true},
				},
				Action: r.StaffSet,
			},
		},
	}
}
