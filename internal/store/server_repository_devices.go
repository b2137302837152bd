package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/models"
)

const (
	createDevice = `INSERT INTO devices (device_id, key_hash, label)
    VALUES ($1, $2, $3)
    RETURNING id, device_id, key_hash, label, created_at;`

	findDeviceByDeviceID = `SELECT id, device_id, key_hash, label, created_at
    FROM devices
    WHERE device_id = $1;`
)

type deviceRepository struct {
	*DB
	logger *logger.Logger
}

func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	return &deviceRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *deviceRepository) CreateDevice(ctx context.Context, device models.Device) (models.Device, error) {
	log := logger.FromContext(ctx)

	var created models.Device
	err := r.DB.QueryRowContext(ctx, createDevice,
		device.DeviceID,
		device.KeyHash,
		device.Label,
	).Scan(
		&created.ID,
		&created.DeviceID,
		&created.KeyHash,
		&created.Label,
		&created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Device{}, fmt.Errorf("%w: device_id=%s", ErrDeviceExists, device.DeviceID)
		}
		log.Err(err).
			Str("func", "deviceRepository.CreateDevice").
			Str("device_id", device.DeviceID).
			Msg("failed to execute insert for device")
		return models.Device{}, fmt.Errorf("failed to create device (device_id=%s): %w", device.DeviceID, err)
	}

	return created, nil
}

func (r *deviceRepository) FindDevice(ctx context.Context, deviceID string) (models.Device, error) {
	log := logger.FromContext(ctx)

	var device models.Device
	err := r.DB.QueryRowContext(ctx, findDeviceByDeviceID, deviceID).Scan(
		&device.ID,
		&device.DeviceID,
		&device.KeyHash,
		&device.Label,
		&device.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Device{}, ErrDeviceNotFound
		}
		log.Err(err).
			Str("func", "deviceRepository.FindDevice").
			Str("device_id", deviceID).
			Msg("failed to scan device row")
		return models.Device{}, fmt.Errorf("failed to find device (device_id=%s): %w", deviceID, err)
	}

	return device, nil
}
