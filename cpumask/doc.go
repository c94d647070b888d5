/*
Package cpumask models CPU affinity masks of processes and provides the OS
calls to query and replace the mask of the current process.

Logically, [List] and [Set] are equivalent, as they both represent sets of one
or more logical CPUs. Each logical CPU is identified by their 0-based CPU
number. The difference between List and Set lies in their internal
representations, mirroring different representation forms in the OS
interfaces.

  - [List] internally stores CPU numbers as ranges, such as 1-4, 8-15.
  - [Set] internally stores CPU numbers as bits in a bytestream, such as (hex)
    ff1e.

[List.Set] converts a List into its corresponding Set. In the opposite
direction, [Set.List] converts a Set into its equivalent List.

[Masks] and [Pin] are the get/set process-affinity calls. They are implemented
for Linux and Windows; other platforms report [ErrNotSupported]. On Windows
only the process's default processor group is covered, as the native affinity
mask integer cannot address further groups.
*/
package cpumask
