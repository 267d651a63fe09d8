package postgresql

import (
	"fmt"
	"strings"

	"github.com/dukex/fluxo/pkg/persistence"
)

func documentTable(name string) string {
	return fmt.Sprintf(`
		CREATE TABLE %[1]s (
			id VARCHAR(255) PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			data JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE INDEX idx_%[1]s_created_at ON %[1]s(created_at);
		CREATE INDEX idx_%[1]s_updated_at ON %[1]s(updated_at);
		CREATE INDEX idx_%[1]s_data ON %[1]s USING GIN (data jsonb_path_ops);
	`, name)
}

func migrations() map[int]string {
	var initial strings.Builder

	for _, collection := range persistence.Collections() {
		initial.WriteString(documentTable(collection.Name))
	}

	return map[int]string{
		1: initial.String(),
		2: `
			-- Lookups used by the catalog and notification services
			CREATE INDEX idx_product_mappings_product_id ON product_mappings ((data->>'product_id'));
			CREATE INDEX idx_notifications_user_id ON notifications ((data->>'user_id'));
			CREATE INDEX idx_shared_records_record ON shared_records ((data->>'record_type'), (data->>'record_id'));
		`,
	}
}
