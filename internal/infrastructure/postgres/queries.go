package postgres

// Sentencias con alcance de empresa: company_id siempre es $1.
const (
	branchColumns = `id, company_id, name, address, phone, active, created_at`

	insertBranchSQL = `
		INSERT INTO branches (company_id, id, name, address, phone, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectBranchSQL = `
		SELECT ` + branchColumns + `
		FROM branches WHERE company_id = $1 AND id = $2`

	// Parámetros NULL conservan el valor actual: el parche se aplica en una sola sentencia.
	updateBranchSQL = `
		UPDATE branches SET
			name = COALESCE($3::varchar, name),
			address = COALESCE($4::varchar, address),
			phone = COALESCE($5::varchar, phone),
			active = COALESCE($6::boolean, active)
		WHERE company_id = $1 AND id = $2
		RETURNING ` + branchColumns

	listBranchesSQL = `
		SELECT ` + branchColumns + `
		FROM branches
		WHERE company_id = $1 AND ($2::boolean IS NULL OR active = $2)
		ORDER BY created_at, id LIMIT $3 OFFSET $4`

	softDeleteBranchSQL = `
		UPDATE branches SET active = false
		WHERE company_id = $1 AND id = $2`

	listBranchesByWarehouseSQL = `
		SELECT b.id, b.company_id, b.name, b.address, b.phone, b.active, b.created_at
		FROM branch_warehouses bw
		JOIN branches b ON b.id = bw.branch_id
		WHERE b.company_id = $1 AND bw.warehouse_id = $2
		ORDER BY b.created_at, b.id`

	warehouseColumns = `id, company_id, name, description, is_primary, active, created_at`

	insertWarehouseSQL = `
		INSERT INTO warehouses (company_id, id, name, description, is_primary, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	selectWarehouseSQL = `
		SELECT ` + warehouseColumns + `
		FROM warehouses WHERE company_id = $1 AND id = $2`

	updateWarehouseSQL = `
		UPDATE warehouses SET
			name = COALESCE($3::varchar, name),
			description = COALESCE($4::varchar, description),
			is_primary = COALESCE($5::boolean, is_primary),
			active = COALESCE($6::boolean, active)
		WHERE company_id = $1 AND id = $2
		RETURNING ` + warehouseColumns

	listWarehousesSQL = `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE company_id = $1 AND ($2::boolean IS NULL OR active = $2)
		ORDER BY created_at, id LIMIT $3 OFFSET $4`

	softDeleteWarehouseSQL = `
		UPDATE warehouses SET active = false
		WHERE company_id = $1 AND id = $2`

	listWarehousesByBranchSQL = `
		SELECT w.id, w.company_id, w.name, w.description, w.is_primary, w.active, w.created_at
		FROM branch_warehouses bw
		JOIN warehouses w ON w.id = bw.warehouse_id
		WHERE w.company_id = $1 AND bw.branch_id = $2
		ORDER BY w.created_at, w.id`

	// INSERT ... SELECT: si la sucursal no es de la empresa no se inserta nada (0 filas).
	insertUserBranchSQL = `
		INSERT INTO user_branches (user_id, branch_id, created_at)
		SELECT $2::text, b.id, $4::timestamptz FROM branches b
		WHERE b.company_id = $1 AND b.id = $3`

	listUserBranchesSQL = `
		SELECT ub.user_id, ub.branch_id, ub.created_at
		FROM user_branches ub
		JOIN branches b ON b.id = ub.branch_id
		WHERE b.company_id = $1 AND ub.branch_id = $2
		ORDER BY ub.created_at, ub.user_id`

	deleteUserBranchSQL = `
		DELETE FROM user_branches ub USING branches b
		WHERE b.id = ub.branch_id AND b.company_id = $1 AND ub.user_id = $2 AND ub.branch_id = $3`

	insertBranchWarehouseSQL = `
		INSERT INTO branch_warehouses (branch_id, warehouse_id, created_at)
		SELECT b.id, w.id, $4::timestamptz FROM branches b
		JOIN warehouses w ON w.company_id = b.company_id
		WHERE b.company_id = $1 AND b.id = $2 AND w.id = $3`

	deleteBranchWarehouseSQL = `
		DELETE FROM branch_warehouses bw USING branches b
		WHERE b.id = bw.branch_id AND b.company_id = $1 AND bw.branch_id = $2 AND bw.warehouse_id = $3`
)

// Sin alcance: solo para distinguir NotFound de CrossTenant al crear vínculos.
const (
	branchOwnerSQL    = `SELECT company_id FROM branches WHERE id = $1`
	warehouseOwnerSQL = `SELECT company_id FROM warehouses WHERE id = $1`
)
