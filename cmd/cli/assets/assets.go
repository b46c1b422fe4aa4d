package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inventariolab/inventario/cmd/cli/config"
	"github.com/inventariolab/inventario/cmd/cli/output"
	"github.com/inventariolab/inventario/internal/models"
)

// ==========================
// Init Assets
// ==========================
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		getAssetCmd(),
		createAssetCmd(),
		updateAssetCmd(),
		relocateAssetCmd(),
		costAssetCmd(),
		statusAssetCmd(),
		deleteAssetCmd(),
		historyAssetCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

// ==========================
// LIST
// ==========================
func listAssetsCmd() *cobra.Command {
	var asJSON bool
	var name, status string
	var locationID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			if name != "" {
				q.Set("name", name)
			}
			if status != "" {
				q.Set("status", status)
			}
			if locationID > 0 {
				q.Set("location_id", strconv.Itoa(locationID))
			}
			path := "/v1/assets"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			body, err := apiRequest("GET", path, nil)
			if err != nil {
				fmt.Println(err)
				return
			}

			var out struct {
				Items []models.Asset `json:"items"`
				Total int            `json:"total"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(out.Items, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(out.Items))
			for _, a := range out.Items {
				rows = append(rows, []interface{}{
					a.ID, a.Name, a.TypeID, a.LocationID, a.ResponsibleID,
					fmt.Sprintf("%.2f", a.Cost), a.Status,
				})
			}
			output.RenderTable(
				[]string{"ID", "Name", "Type", "Location", "Responsible", "Cost", "Status"},
				rows,
			)
			fmt.Printf("Total: %d\n", out.Total)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output raw JSON")
	cmd.Flags().StringVar(&name, "name", "", "filter by name substring")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().IntVar(&locationID, "location", 0, "filter by location id")

	return cmd
}

// ==========================
// GET
// ==========================
func getAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show an asset",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiRequest("GET", "/v1/assets/"+args[0], nil)
			if err != nil {
				fmt.Println(err)
				return
			}
			printJSON(body)
		},
	}
}

// ==========================
// CREATE
// ==========================
func createAssetCmd() *cobra.Command {
	var name, subtype, description, serial string
	var typeID, responsibleID, locationID int
	var cost float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]interface{}{
				"name":           name,
				"type_id":        typeID,
				"subtype":        subtype,
				"description":    description,
				"serial_number":  serial,
				"responsible_id": responsibleID,
				"location_id":    locationID,
				"cost":           cost,
			}
			body, err := apiRequest("POST", "/v1/assets", payload)
			if err != nil {
				fmt.Println(err)
				return
			}
			printJSON(body)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().IntVar(&typeID, "type", 0, "asset type id")
	cmd.Flags().StringVar(&subtype, "subtype", "", "asset subtype")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&serial, "serial", "", "serial number")
	cmd.Flags().IntVar(&responsibleID, "responsible", 0, "responsible user id")
	cmd.Flags().IntVar(&locationID, "location", 0, "location id")
	cmd.Flags().Float64Var(&cost, "cost", 0, "acquisition cost")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateAssetCmd() *cobra.Command {
	var name, subtype, description, serial string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update asset fields",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// Only flags the caller set make it into the patch.
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("name") {
				payload["name"] = name
			}
			if cmd.Flags().Changed("subtype") {
				payload["subtype"] = subtype
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}
			if cmd.Flags().Changed("serial") {
				payload["serial_number"] = serial
			}
			if len(payload) == 0 {
				fmt.Println("Nothing to update")
				return
			}

			body, err := apiRequest("PATCH", "/v1/assets/"+args[0], payload)
			if err != nil {
				fmt.Println(err)
				return
			}
			printJSON(body)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&subtype, "subtype", "", "asset subtype")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&serial, "serial", "", "serial number")

	return cmd
}

// ==========================
// RELOCATE
// ==========================
func relocateAssetCmd() *cobra.Command {
	var locationID, responsibleID int

	cmd := &cobra.Command{
		Use:   "relocate [id]",
		Short: "Move an asset to another location and responsible",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]interface{}{
				"location_id":    locationID,
				"responsible_id": responsibleID,
			}
			body, err := apiRequest("POST", "/v1/assets/"+args[0]+"/relocate", payload)
			if err != nil {
				fmt.Println(err)
				return
			}
			printJSON(body)
		},
	}

	cmd.Flags().IntVar(&locationID, "location", 0, "new location id")
	cmd.Flags().IntVar(&responsibleID, "responsible", 0, "new responsible user id")

	return cmd
}

// ==========================
// COST
// ==========================
func costAssetCmd() *cobra.Command {
	var cost float64

	cmd := &cobra.Command{
		Use:   "cost [id]",
		Short: "Update an asset's cost",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiRequest("POST", "/v1/assets/"+args[0]+"/cost", map[string]interface{}{"cost": cost})
			if err != nil {
				fmt.Println(err)
				return
			}
			printJSON(body)
		},
	}

	cmd.Flags().Float64Var(&cost, "cost", 0, "new cost")

	return cmd
}

// ==========================
// STATUS
// ==========================
func statusAssetCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "status [id]",
		Short: "Change an asset's status",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiRequest("POST", "/v1/assets/"+args[0]+"/status", map[string]interface{}{"status": status})
			if err != nil {
				fmt.Println(err)
				return
			}
			printJSON(body)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "active, inactive or decommissioned")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, err := apiRequest("DELETE", "/v1/assets/"+args[0], nil)
			if err != nil {
				fmt.Println(err)
				return
			}
			fmt.Println("Asset deleted")
		},
	}
}

// ==========================
// HISTORY
// ==========================
func historyAssetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show an asset's change history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiRequest("GET", "/v1/assets/"+args[0]+"/history", nil)
			if err != nil {
				fmt.Println(err)
				return
			}

			var events []models.ChangeEvent
			if err := json.Unmarshal(body, &events); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(events, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(events))
			for _, e := range events {
				rows = append(rows, []interface{}{
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.Action,
					formatDeltas(e.Deltas),
					e.Username,
				})
			}
			output.RenderTable([]string{"When", "Action", "Changes", "By"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output raw JSON")

	return cmd
}

func formatDeltas(deltas []models.FieldDelta) string {
	s := ""
	for i, d := range deltas {
		if i > 0 {
			s += "; "
		}
		s += fmt.Sprintf("%s: %v -> %v", d.Field, d.Old, d.New)
	}
	return s
}

//
// ==========================
// API Helpers
// ==========================
//

func apiRequest(method, path string, payload interface{}) ([]byte, error) {
	token, err := config.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("please login first")
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func printJSON(body []byte) {
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
