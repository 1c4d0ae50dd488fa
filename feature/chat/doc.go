// Package chat passes chat between the game and operators.
//
// Messages typed in game arrive on the storage connection as gameChat and are
// stored with source "mc". Operators post through POST /chat; those are stored
// with source "web" and relayed to the storage system as webChat. Both paths ping
// observers with updateChat.
package chat
