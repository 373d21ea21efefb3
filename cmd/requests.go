package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maintenance-system/maintenance-service/pkg/client"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Browse and act on maintenance requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all maintenance requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		if _, err := requireIdentity(c); err != nil {
			return err
		}
		items, err := c.ListRequests(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("no maintenance requests")
			return nil
		}
		for i := range items {
			m := &items[i]
			fmt.Printf("#%-5d %-13s %-10s %-12s %s — %s\n",
				m.MaintenanceNumber, m.Status, m.MaintenanceType,
				m.RequesterName, m.Department, m.ProblemDescription)
		}
		return nil
	},
}

var requestsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one maintenance request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		if _, err := requireIdentity(c); err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		m, err := c.GetRequest(cmd.Context(), id)
		if err != nil {
			return err
		}
		printRequest(m)
		return nil
	},
}

var createIn client.CreateRequestInput

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new maintenance request (operator)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		if _, err := requireIdentity(c); err != nil {
			return err
		}
		m, err := c.CreateRequest(cmd.Context(), createIn)
		if err != nil {
			return err
		}
		fmt.Printf("created request #%d (%s)\n", m.MaintenanceNumber, m.Status)
		return nil
	},
}

var startTechnician string

var requestsStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start maintenance on an open request (maintenance)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		if _, err := requireIdentity(c); err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		m, err := c.GetRequest(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := c.StartRequest(cmd.Context(), m, startTechnician); err != nil {
			return err
		}
		fmt.Printf("request #%d is now %s (technician: %s)\n", m.MaintenanceNumber, m.Status, m.TechnicianName)
		return nil
	},
}

var finishNotes string

var requestsFinishCmd = &cobra.Command{
	Use:   "finish <id>",
	Short: "Finish maintenance on an in-progress request (maintenance)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		if _, err := requireIdentity(c); err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		m, err := c.GetRequest(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := c.FinishRequest(cmd.Context(), m, finishNotes); err != nil {
			return err
		}
		fmt.Printf("request #%d is now %s (total time: %s)\n", m.MaintenanceNumber, m.Status, m.TotalTime)
		return nil
	},
}

func printRequest(m *client.MaintenanceRequest) {
	fmt.Printf("request #%d\n", m.MaintenanceNumber)
	fmt.Printf("  status:       %s\n", m.Status)
	fmt.Printf("  requester:    %s (%s)\n", m.RequesterName, m.Department)
	fmt.Printf("  type:         %s\n", m.MaintenanceType)
	fmt.Printf("  equipment:    %s\n", m.EquipmentStatus)
	fmt.Printf("  opened:       %s %s\n", m.RequestDate, m.RequestTime)
	fmt.Printf("  problem:      %s\n", m.ProblemDescription)
	if m.TechnicianName != "" {
		fmt.Printf("  technician:   %s\n", m.TechnicianName)
	}
	if m.StartDatetime != nil {
		fmt.Printf("  started:      %s\n", m.StartDatetime.Local().Format("2006-01-02 15:04"))
	}
	if m.EndDatetime != nil {
		fmt.Printf("  finished:     %s\n", m.EndDatetime.Local().Format("2006-01-02 15:04"))
	}
	if m.ResolutionNotes != "" {
		fmt.Printf("  resolution:   %s\n", m.ResolutionNotes)
	}
	if m.TotalTime != "" {
		fmt.Printf("  total time:   %s\n", m.TotalTime)
	}
}

func init() {
	requestsCreateCmd.Flags().StringVar(&createIn.RequesterName, "requester", "", "requester name")
	requestsCreateCmd.Flags().StringVar(&createIn.Department, "department", "", "department")
	requestsCreateCmd.Flags().StringVar(&createIn.MaintenanceType, "type", "", "maintenance type: eletrica|mecanica|outros")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentStatus, "equipment-status", "", "equipment status: funcionando|alerta|inoperante")
	requestsCreateCmd.Flags().StringVar(&createIn.ProblemDescription, "problem", "", "problem description")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentLocationPress, "press", "", "press location")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentLocationPressNumber, "press-number", "", "press number")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentLocationThread, "thread", "", "thread location")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentLocationThreadNumber, "thread-number", "", "thread number")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentLocationOther, "other", "", "other location")
	requestsCreateCmd.Flags().StringVar(&createIn.EquipmentLocationOtherNumber, "other-number", "", "other location number")

	requestsStartCmd.Flags().StringVar(&startTechnician, "technician", "", "technician name")
	requestsFinishCmd.Flags().StringVar(&finishNotes, "notes", "", "resolution notes")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsShowCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsStartCmd)
	requestsCmd.AddCommand(requestsFinishCmd)
}
