package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/inventariolab/inventario/cmd/cli/config"
	"github.com/inventariolab/inventario/cmd/cli/output"
	"github.com/inventariolab/inventario/internal/models"
)

// InitCatalog registers the locations/types/users listing commands.
func InitCatalog(rootCmd *cobra.Command) {
	rootCmd.AddCommand(locationsCmd(), typesCmd(), usersCmd())
}

// ==========================
// LOCATIONS
// ==========================
func locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List locations",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/v1/locations")
			if err != nil {
				fmt.Println(err)
				return
			}
			var locations []models.Location
			if err := json.Unmarshal(body, &locations); err != nil {
				fmt.Println(err)
				return
			}
			rows := make([][]interface{}, 0, len(locations))
			for _, l := range locations {
				rows = append(rows, []interface{}{l.ID, l.Name, l.Description})
			}
			output.RenderTable([]string{"ID", "Name", "Description"}, rows)
		},
	}
}

// ==========================
// TYPES
// ==========================
func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List asset types",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/v1/types")
			if err != nil {
				fmt.Println(err)
				return
			}
			var types []models.AssetType
			if err := json.Unmarshal(body, &types); err != nil {
				fmt.Println(err)
				return
			}
			rows := make([][]interface{}, 0, len(types))
			for _, t := range types {
				rows = append(rows, []interface{}{t.ID, t.Name})
			}
			output.RenderTable([]string{"ID", "Name"}, rows)
		},
	}
}

// ==========================
// USERS
// ==========================
func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/v1/users")
			if err != nil {
				fmt.Println(err)
				return
			}
			var out struct {
				Items []models.User `json:"items"`
			}
			if err := json.Unmarshal(body, &out); err != nil {
				fmt.Println(err)
				return
			}
			rows := make([][]interface{}, 0, len(out.Items))
			for _, u := range out.Items {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Role, u.Email})
			}
			output.RenderTable([]string{"ID", "Username", "Role", "Email"}, rows)
		},
	}
}

func apiGet(path string) ([]byte, error) {
	token, err := config.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("please login first")
	}

	req, err := http.NewRequest("GET", config.APIURL()+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
