package idgen

import (
	"os"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

// NewWorker builds a sonyflake worker. When no private address is available to derive the
// machine id (containers without a private network, for instance) the process id is used.
func NewWorker() *sonyflake.Sonyflake {
	if w := sonyflake.NewSonyflake(sonyflake.Settings{}); w != nil {
		return w
	}
	return sonyflake.NewSonyflake(sonyflake.Settings{
		MachineID: func() (uint16, error) {
			return uint16(os.Getpid()), nil
		},
	})
}

func NextID(idWorker *sonyflake.Sonyflake) types.ID {
	id, err := idWorker.NextID()
	if err != nil {
		panic(err)
	}
	return types.ID(id)
}
