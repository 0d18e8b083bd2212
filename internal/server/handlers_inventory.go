package server

import (
	"database/sql"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

const inventoryColumns = `
	id, user_id, name, type, quantity, unit, min_stock_level, current_value, last_updated
`

func scanInventoryItem(row interface{ Scan(...any) error }) (InventoryItem, error) {
	var item InventoryItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Type, &item.Quantity,
		&item.Unit, &item.MinStockLevel, &item.CurrentValue, &item.LastUpdated,
	)
	return item, err
}

func validateInventory(req inventoryRequest) string {
	if req.Name == "" {
		return "name is required"
	}
	if !validInventoryType(req.Type) {
		return "type must be mineral or supply"
	}
	if req.Quantity < 0 || req.MinStockLevel < 0 || req.CurrentValue < 0 {
		return "quantity, minimum stock level, and current value must be non-negative"
	}
	return ""
}

func (s *Server) listInventory(c *gin.Context) {
	rows, err := s.db.Query(`
		SELECT `+inventoryColumns+` FROM inventory_items
		WHERE user_id = $1 ORDER BY name
	`, currentUserID(c))
	if err != nil {
		log.Printf("inventory: list: %v", err)
		respondError(c, 500, "failed to fetch inventory")
		return
	}
	defer rows.Close()

	items := make([]InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			log.Printf("inventory: scan: %v", err)
			respondError(c, 500, "failed to read inventory")
			return
		}
		items = append(items, item)
	}
	respondData(c, 200, items)
}

// listLowStock returns items at or below their minimum stock level.
func (s *Server) listLowStock(c *gin.Context) {
	rows, err := s.db.Query(`
		SELECT `+inventoryColumns+` FROM inventory_items
		WHERE user_id = $1 AND quantity <= min_stock_level
		ORDER BY name
	`, currentUserID(c))
	if err != nil {
		log.Printf("inventory: low-stock: %v", err)
		respondError(c, 500, "failed to fetch inventory")
		return
	}
	defer rows.Close()

	items := make([]InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			log.Printf("inventory: scan: %v", err)
			respondError(c, 500, "failed to read inventory")
			return
		}
		items = append(items, item)
	}
	respondData(c, 200, items)
}

func (s *Server) getInventoryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid inventory item id")
		return
	}
	item, err := scanInventoryItem(s.db.QueryRow(`
		SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1 AND user_id = $2
	`, id, currentUserID(c)))
	if err == sql.ErrNoRows {
		respondError(c, 404, "inventory item not found")
		return
	}
	if err != nil {
		log.Printf("inventory: get: %v", err)
		respondError(c, 500, "failed to fetch inventory item")
		return
	}
	respondData(c, 200, item)
}

func (s *Server) createInventoryItem(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	if errMsg := validateInventory(req); errMsg != "" {
		respondError(c, 400, errMsg)
		return
	}

	item, err := scanInventoryItem(s.db.QueryRow(`
		INSERT INTO inventory_items (user_id, name, type, quantity, unit, min_stock_level, current_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+inventoryColumns,
		currentUserID(c), req.Name, req.Type, req.Quantity, req.Unit, req.MinStockLevel, req.CurrentValue))
	if err != nil {
		log.Printf("inventory: create: %v", err)
		respondError(c, 500, "failed to create inventory item")
		return
	}
	respondData(c, 201, item)
}

func (s *Server) updateInventoryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid inventory item id")
		return
	}
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	if errMsg := validateInventory(req); errMsg != "" {
		respondError(c, 400, errMsg)
		return
	}

	item, err := scanInventoryItem(s.db.QueryRow(`
		UPDATE inventory_items SET name = $1, type = $2, quantity = $3, unit = $4,
			min_stock_level = $5, current_value = $6, last_updated = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
		RETURNING `+inventoryColumns,
		req.Name, req.Type, req.Quantity, req.Unit, req.MinStockLevel, req.CurrentValue,
		id, currentUserID(c)))
	if err == sql.ErrNoRows {
		respondError(c, 404, "inventory item not found")
		return
	}
	if err != nil {
		log.Printf("inventory: update: %v", err)
		respondError(c, 500, "failed to update inventory item")
		return
	}
	respondData(c, 200, item)
}

// patchInventoryQuantity adjusts only the quantity, the fast path for stock
// movements.
func (s *Server) patchInventoryQuantity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid inventory item id")
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	if req.Quantity < 0 {
		respondError(c, 400, "quantity must be non-negative")
		return
	}

	item, err := scanInventoryItem(s.db.QueryRow(`
		UPDATE inventory_items SET quantity = $1, last_updated = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING `+inventoryColumns,
		req.Quantity, id, currentUserID(c)))
	if err == sql.ErrNoRows {
		respondError(c, 404, "inventory item not found")
		return
	}
	if err != nil {
		log.Printf("inventory: patch quantity: %v", err)
		respondError(c, 500, "failed to update quantity")
		return
	}
	respondData(c, 200, item)
}

func (s *Server) deleteInventoryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, 400, "invalid inventory item id")
		return
	}
	result, err := s.db.Exec(`DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, id, currentUserID(c))
	if err != nil {
		log.Printf("inventory: delete: %v", err)
		respondError(c, 500, "failed to delete inventory item")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(c, 404, "inventory item not found")
		return
	}
	respondMessage(c, 200, "inventory item deleted")
}
