// Package launch composes and starts a simulation instance.
//
// A Composer turns configuration and launch options into a Description: the
// exclusive network parameters, the explicit child environment and the
// ordered process list
//
//  1. the simulator (gzserver, or gazebo with the client GUI)
//  2. the robot state publisher, fed the robot URDF
//  3. the entity spawner
//  4. the cognition component, fed the motor link order
//
// A Service hands a Description to a system.ProcessStarter. Processes are
// started in order and left running; the service does not supervise them or
// report their exit status.
package launch
